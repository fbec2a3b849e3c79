package game

import (
	"encoding/json"
	"fmt"
	"image/color"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/matrix-dash/internal/config"
)

// statusSample is one poll result from the call-pipeline status endpoint.
type statusSample struct {
	At        time.Time
	Active    int
	Queued    int
	Completed int
	OK        bool
}

// sampleRing keeps the last N poll results. The poll goroutine writes and
// the frame loop reads, so access is mutex-guarded.
type sampleRing struct {
	mu        sync.RWMutex
	samples   []statusSample
	nextIndex int
}

func newSampleRing(size int) *sampleRing {
	return &sampleRing{samples: make([]statusSample, size)}
}

func (r *sampleRing) push(s statusSample) {
	r.mu.Lock()
	r.samples[r.nextIndex] = s
	r.nextIndex++
	if r.nextIndex >= len(r.samples) {
		r.nextIndex = 0
	}
	r.mu.Unlock()
}

// latest returns the most recent sample, if any has been recorded yet.
func (r *sampleRing) latest() (statusSample, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.nextIndex - 1
	if idx < 0 {
		idx = len(r.samples) - 1
	}
	s := r.samples[idx]
	return s, !s.At.IsZero()
}

// history returns up to n recorded samples in chronological order.
func (r *sampleRing) history(n int) []statusSample {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > len(r.samples) {
		n = len(r.samples)
	}
	out := make([]statusSample, 0, n)
	idx := r.nextIndex - 1
	if idx < 0 {
		idx = len(r.samples) - 1
	}
	for i := 0; i < n; i++ {
		if r.samples[idx].At.IsZero() {
			break
		}
		out = append(out, r.samples[idx])
		idx--
		if idx < 0 {
			idx = len(r.samples) - 1
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

type statusPayload struct {
	ActiveCalls    int  `json:"active_calls"`
	QueuedCalls    int  `json:"queued_calls"`
	CompletedToday int  `json:"completed_today"`
	OK             bool `json:"ok"`
}

// statusPanel polls the dashboard status endpoint on a fixed interval and
// renders the latest numbers plus a short load history strip.
type statusPanel struct {
	url      string
	interval time.Duration
	client   *http.Client
	ring     *sampleRing

	inflight atomic.Bool
	lastKick time.Time
	healthy  bool
}

func newStatusPanel(url string, interval time.Duration) *statusPanel {
	return &statusPanel{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 3 * time.Second},
		ring:     newSampleRing(config.HistorySize),
		healthy:  true,
	}
}

// update kicks a poll when the interval has elapsed and reports whether the
// endpoint just transitioned from healthy to failing.
func (p *statusPanel) update(now time.Time) (degraded bool) {
	if now.Sub(p.lastKick) >= p.interval && p.inflight.CompareAndSwap(false, true) {
		p.lastKick = now
		go p.poll()
	}

	s, ok := p.ring.latest()
	if !ok {
		return false
	}
	degraded = p.healthy && !s.OK
	p.healthy = s.OK
	return degraded
}

func (p *statusPanel) poll() {
	defer p.inflight.Store(false)

	sample := statusSample{At: time.Now()}
	resp, err := p.client.Get(p.url)
	if err == nil {
		defer resp.Body.Close()
		var payload statusPayload
		if resp.StatusCode == http.StatusOK &&
			json.NewDecoder(resp.Body).Decode(&payload) == nil {
			sample.Active = payload.ActiveCalls
			sample.Queued = payload.QueuedCalls
			sample.Completed = payload.CompletedToday
			sample.OK = payload.OK
		}
	}
	p.ring.push(sample)
}

func (p *statusPanel) draw(screen *ebiten.Image, scale float64) {
	x := float32(config.PanelX) * float32(scale)
	y := float32(config.PanelY) * float32(scale)
	w := float32(config.PanelWidth) * float32(scale)
	h := float32(config.PanelHeight) * float32(scale)

	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 10, G: 14, B: 18, A: 210}, false)
	vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	s, ok := p.ring.latest()
	if !ok {
		ebitenutil.DebugPrintAt(screen, "CALL PIPELINE\n\nwaiting for first poll...", int(x)+10, int(y)+10)
		return
	}

	state := "OK"
	if !s.OK {
		state = "DEGRADED"
	}
	txt := fmt.Sprintf("CALL PIPELINE  [%s]\n\nactive:    %d\nqueued:    %d\ncompleted: %d\n\nupdated %s ago",
		state, s.Active, s.Queued, s.Completed, formatAge(time.Since(s.At)))
	ebitenutil.DebugPrintAt(screen, txt, int(x)+10, int(y)+10)

	p.drawHistory(screen, x, y+h-24*float32(scale), w, 20*float32(scale))
}

// drawHistory renders one bar per recorded sample, height by queue load,
// red when the sample was a failed poll.
func (p *statusPanel) drawHistory(screen *ebiten.Image, x, y, w, h float32) {
	hist := p.ring.history(config.HistorySize)
	if len(hist) == 0 {
		return
	}

	maxLoad := 1
	for _, s := range hist {
		if load := s.Active + s.Queued; load > maxLoad {
			maxLoad = load
		}
	}

	barW := w / float32(config.HistorySize)
	for i, s := range hist {
		load := clamp01(float64(s.Active+s.Queued) / float64(maxLoad))
		barH := float32(load) * (h - 2)
		if barH < 2 {
			barH = 2
		}
		c := hsvColor(130-load*130, 0.8, 0.9)
		if !s.OK {
			c = color.RGBA{R: 220, G: 40, B: 40, A: 255}
		}
		vector.DrawFilledRect(screen, x+float32(i)*barW+1, y+h-barH, barW-2, barH, c, false)
	}
}
