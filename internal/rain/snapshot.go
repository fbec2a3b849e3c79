package rain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// snapshotKey is the versioned store key; bump the suffix when the snapshot
// shape changes so stale layouts from older builds parse as absent.
const snapshotKey = "matrixRainState.v2"

// Snapshots older than this are discarded; the window is just long enough to
// survive an app restart without replaying genuinely old state.
const snapshotFreshness = 15 * time.Second

// Snapshot is the persisted continuity state, written on lifecycle events
// (minimize, focus loss, shutdown) and read once at startup.
type Snapshot struct {
	SavedAt        int64     `json:"savedAt"`
	ColumnCount    int       `json:"columnCount"`
	FontSize       int       `json:"fontSize"`
	Drops          []float64 `json:"drops"`
	ViewportWidth  int       `json:"viewportWidth"`
	ViewportHeight int       `json:"viewportHeight"`
}

// RestoreResult distinguishes the three load outcomes. Absent and Stale are
// handled identically by callers today; keeping them separate keeps the
// contract explicit and testable.
type RestoreResult int

const (
	Restored RestoreResult = iota
	Absent
	Stale
)

func (r RestoreResult) String() string {
	switch r {
	case Restored:
		return "restored"
	case Stale:
		return "stale"
	default:
		return "absent"
	}
}

// Store persists snapshots as a single JSON file in a session-scoped
// directory. Every failure mode (missing dir, quota, bad payload) degrades
// to a fresh reseed, so no method returns an error.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir; an empty dir falls back to a
// subdirectory of the OS temp dir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "matrix-dash")
	}
	return &Store{dir: dir, now: time.Now}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, snapshotKey+".json")
}

// Save stamps the snapshot with the current time and writes it, overwriting
// any previous one. Best effort: failures are swallowed, never retried.
func (s *Store) Save(snap Snapshot) {
	snap.SavedAt = s.now().UnixMilli()
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(s.path(), data, 0o644)
}

// Load reads the stored snapshot. Missing file, malformed JSON, or a payload
// without a drops sequence all report Absent; a well-formed snapshot older
// than the freshness window reports Stale. Only Restored carries usable data.
func (s *Store) Load() (Snapshot, RestoreResult) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return Snapshot{}, Absent
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, Absent
	}
	if snap.Drops == nil {
		return Snapshot{}, Absent
	}
	if s.now().UnixMilli()-snap.SavedAt > snapshotFreshness.Milliseconds() {
		return Snapshot{}, Stale
	}
	return snap, Restored
}
