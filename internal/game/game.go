package game

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/iburimskiy/matrix-dash/internal/config"
	"github.com/iburimskiy/matrix-dash/internal/rain"
)

// Game hosts one rain engine plus the overlay widgets. It owns the frame
// loop glue: debounced resize, lifecycle saves, and input.
type Game struct {
	cfg    config.Settings
	engine *rain.Engine
	store  *rain.Store
	deb    *rain.Debouncer

	fontSource *text.GoTextFaceSource
	face       *text.GoTextFace

	status *statusPanel
	chime  *chime

	outsideW, outsideH float64
	deviceScale        float64

	started   bool
	hidden    bool
	showPanel bool
}

func New(cfg config.Settings) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}

	var style rain.Style
	switch cfg.Variant {
	case "pulse":
		style = rain.PulseStyle{}
	default:
		style = rain.ParseThemeStyle(cfg.ThemeRGB, cfg.ThemeTrail)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Game{
		cfg:        cfg,
		engine:     rain.NewEngine(style, rng),
		store:      rain.NewStore(cfg.StateDir),
		deb:        rain.NewDebouncer(rain.ResizeQuiet),
		fontSource: src,
		status:     newStatusPanel(cfg.StatusURL, cfg.PollInterval),
		chime:      &chime{},
		showPanel:  true,
	}, nil
}

// Layout is unused; LayoutF below carries the device scale factor through so
// the backing store matches the physical pixel grid.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH || scale != g.deviceScale {
		if g.started {
			g.deb.Note(time.Now())
		}
		g.outsideW, g.outsideH, g.deviceScale = outsideWidth, outsideHeight, scale
	}

	density := g.currentGrid().PixelDensity
	return outsideWidth * density, outsideHeight * density
}

// currentGrid derives the grid from the latest viewport size.
func (g *Game) currentGrid() rain.Grid {
	w, h := int(g.outsideW), int(g.outsideH)
	if w <= 0 || h <= 0 {
		w, h = config.WindowWidth, config.WindowHeight
	}
	return rain.ComputeGrid(w, h, g.deviceScale)
}

func (g *Game) rebuildFace() {
	grid := g.engine.Grid()
	g.face = &text.GoTextFace{
		Source: g.fontSource,
		Size:   float64(grid.FontSize) * grid.PixelDensity,
	}
}

func (g *Game) Update() error {
	now := time.Now()

	if !g.started {
		res := g.engine.Start(g.store, g.currentGrid())
		g.rebuildFace()
		g.started = true
		log.Printf("rain continuity: %s", res)
	}

	if g.deb.Fire(now) {
		g.engine.Resize(g.currentGrid())
		g.rebuildFace()
	}

	// Minimize and focus loss are the desktop analogs of the page-hidden
	// events; save on the transition into either.
	hidden := ebiten.IsWindowMinimized() || !ebiten.IsFocused()
	if hidden && !g.hidden {
		g.SaveNow()
	}
	g.hidden = hidden

	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		if err := showInfoDialog(); err != nil {
			log.Printf("info dialog: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.showPanel = !g.showPanel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.status.update(now) && !g.cfg.Mute {
		g.chime.play()
	}

	g.engine.Advance()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.started {
		return
	}

	grid := g.engine.Grid()
	scale := grid.PixelDensity
	frame := g.engine.Frame()
	style := g.engine.Style()

	// Trailing fade: a translucent black wash over the whole area.
	trail := clamp01(style.Pick(0, frame).TrailAlpha)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h),
		color.RGBA{A: uint8(trail * 255)}, false)

	fontPx := float64(grid.FontSize) * scale
	for col, d := range g.engine.Drops() {
		y := d * fontPx
		if y < -fontPx || y > float64(h)+fontPx {
			continue
		}
		cs := style.Pick(col, frame)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(col)*fontPx, y-fontPx)
		op.ColorScale.ScaleWithColor(cs.Glyph)
		text.Draw(screen, string(g.engine.Glyph()), g.face, op)
	}

	if g.showPanel {
		g.status.draw(screen, scale)
	}
	ebitenutil.DebugPrintAt(screen, "I: info  S: panel  Esc/Q: quit", 12, h-24)
}

// SaveNow snapshots the continuity state. Called on hide transitions,
// termination signals, and normal exit.
func (g *Game) SaveNow() {
	g.engine.SaveTo(g.store, int(g.outsideW), int(g.outsideH))
}
