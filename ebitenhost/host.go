// Package ebitenhost runs a theworld Game inside an Ebitengine window.
//
//	game := theworld.NewGame(cfg)
//	if err := ebitenhost.Run(game, bootstrapper); err != nil {
//		log.Fatal(err)
//	}
package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/the-world-space/theworld"
)

// Host adapts a Game to ebiten.Game. Every ebiten tick polls the keyboard
// into the game's InputHandler and steps one frame of 1/TPS seconds.
type Host struct {
	game     *theworld.Game
	renderer *Renderer
	keys     []ebiten.Key
	runner   *ScriptRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewHost wires renderer into game and returns the adapter.
func NewHost(game *theworld.Game, renderer *Renderer) *Host {
	game.SetRenderer(renderer)
	return &Host{game: game, renderer: renderer, ScreenshotDir: "screenshots"}
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.runner != nil {
		h.runner.step(h)
	}
	h.pollInput()
	return h.game.Step(1.0 / float64(ebiten.TPS()))
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	h.renderer.Draw(screen)
	h.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The configured window size is the logical
// screen size; without one the outside size is used.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := h.game.Config().Window
	if w.Width > 0 && w.Height > 0 {
		return w.Width, w.Height
	}
	return outsideWidth, outsideHeight
}

func (h *Host) pollInput() {
	in := h.game.Input()
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		in.KeyDown(k.String())
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		in.KeyUp(k.String())
	}
}

// Option configures the Host created by Run.
type Option func(*Host)

// WithScript replays an input script during the run.
func WithScript(r *ScriptRunner) Option {
	return func(h *Host) { h.runner = r }
}

// WithScreenshotDir sets the directory screenshots are written to.
func WithScreenshotDir(dir string) Option {
	return func(h *Host) { h.ScreenshotDir = dir }
}

// Run starts input handling, runs the bootstrapper and blocks in the
// ebiten game loop until the window closes or a frame fails.
func Run(game *theworld.Game, b theworld.Bootstrapper, opts ...Option) error {
	h := NewHost(game, NewRenderer())
	for _, opt := range opts {
		opt(h)
	}
	if err := game.Input().StartHandling(); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	if err := game.Run(b); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	defer game.Dispose()

	cfg := game.Config()
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Width > 0 && cfg.Window.Height > 0 {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Loop.TPS > 0 {
		ebiten.SetTPS(cfg.Loop.TPS)
	}
	return ebiten.RunGame(h)
}
