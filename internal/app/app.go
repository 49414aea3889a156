// Package app runs the hologram viewer: window, GL device, scene loading
// and the frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hologram/internal/assets"
	"github.com/Faultbox/hologram/internal/config"
	"github.com/Faultbox/hologram/internal/engine/hologram"
	"github.com/Faultbox/hologram/internal/engine/input"
	"github.com/Faultbox/hologram/internal/engine/renderer"
	"github.com/Faultbox/hologram/internal/engine/screenshot"
	"github.com/Faultbox/hologram/internal/engine/shader"
	"github.com/Faultbox/hologram/internal/engine/transform"
	"github.com/Faultbox/hologram/internal/engine/window"
	"github.com/Faultbox/hologram/internal/logger"
	"github.com/Faultbox/hologram/internal/report"
)

const title = "Hologram"

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	device   *renderer.Device
	input    *input.Input
	assets   *assets.Manager
	reporter report.Reporter
	capture  *screenshot.Capture

	rotation *transform.Rotation
	pipeline *transform.Pipeline
	hologram *hologram.Renderer

	program uint32
	texture uint32
}

// New creates the window and GL context and loads the scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:      cfg,
		log:      logger.Named("app"),
		rotation: &transform.Rotation{},
		assets:   assets.NewManager(),
		capture:  screenshot.New(cfg.Graphics.ScreenshotDir, "hologram"),
	}
	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("model", cfg.Model.OBJ),
	)

	for _, dir := range cfg.Model.AssetDirs {
		if err := a.assets.AddDir(dir); err != nil {
			a.log.Debug("skipping asset dir", zap.Error(err))
		}
	}

	// The model is chosen before the window exists so the dialog is not
	// hidden behind a fullscreen surface.
	modelPath, err := resolveModel(cfg.Model, pickModel)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	a.reporter = NewDialogReporter(title)

	// Device creation needs the context made current by window.New.
	a.device, err = renderer.New()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create GL device: %w", err)
	}

	density := cfg.Input.Density
	if density == 0 {
		density = a.window.Density()
	}
	a.input = input.New(input.NewDrag(a.rotation, density, cfg.Input.Sensitivity))

	a.pipeline = transform.NewPipeline(a.rotation)
	a.hologram = hologram.New(a.device, a.pipeline, hologram.Options{
		ClearColor: cfg.Graphics.ClearColor,
	})

	if err := a.loadScene(modelPath); err != nil {
		a.Close()
		return nil, err
	}

	a.resize()
	a.window.SetTitle(fmt.Sprintf("%s - %s", title, modelPath))
	a.log.Info("viewer initialized", zap.Float32("density", density))
	return a, nil
}

// Run starts the frame loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	limiter := newFrameLimiter(a.cfg.Graphics.FPSLimit)
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		wantShot := false
		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.resize()
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					a.running = false
				case sdl.SCANCODE_R:
					a.pipeline.Reset()
				case sdl.SCANCODE_F12:
					wantShot = true
				}
			}
		}

		a.hologram.DrawFrame()
		if wantShot {
			a.screenshot()
		}
		a.window.SwapBuffers()

		if d := limiter.wait(time.Now()); d > 0 {
			time.Sleep(d)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// resize uses the drawable size, which differs from the window size on
// high-DPI displays.
func (a *App) resize() {
	w, h := a.window.DrawableSize()
	a.hologram.Resize(w, h)
	a.input.SetSize(w, h)
}

// screenshot saves the back buffer before it is swapped.
func (a *App) screenshot() {
	w, h := a.window.DrawableSize()
	path, err := a.capture.SavePixels(a.device.ReadPixels(w, h), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources, then the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.hologram != nil {
		a.hologram.Close()
		a.hologram = nil
	}
	if a.device != nil {
		a.device.DeleteTexture(a.texture)
		shader.Delete(a.program)
		a.texture, a.program = 0, 0
		a.device.Close()
		a.device = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
	a.assets.Close()
}
