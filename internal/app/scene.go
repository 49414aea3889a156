package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/hologram/internal/assets"
	"github.com/Faultbox/hologram/internal/config"
	"github.com/Faultbox/hologram/internal/engine/hologram"
	"github.com/Faultbox/hologram/internal/engine/mesh"
	"github.com/Faultbox/hologram/internal/engine/shader"
	"github.com/Faultbox/hologram/internal/engine/shader/glsl"
	"github.com/Faultbox/hologram/internal/engine/texture"
	"github.com/Faultbox/hologram/internal/obj"
)

// resolveModel returns the model to show: the picked file when picking is
// requested, the configured one otherwise, and the built-in cube last.
// Cancelling the chooser falls through to the configured model.
func resolveModel(cfg config.ModelConfig, pick func() (string, error)) (string, error) {
	if cfg.Pick {
		path, err := pick()
		switch {
		case err == nil:
			return path, nil
		case !errors.Is(err, dialog.ErrCancelled):
			return "", fmt.Errorf("choosing model: %w", err)
		}
	}
	if cfg.OBJ != "" {
		return cfg.OBJ, nil
	}
	return assets.DefaultModel, nil
}

// loadScene parses the model, compiles the shader, uploads the texture and
// mesh, and hands them to the hologram renderer. A parse or shader failure
// is fatal; a failed buffer upload is reported and leaves the regions empty.
func (a *App) loadScene(modelPath string) error {
	data, err := a.assets.Load(modelPath)
	if err != nil {
		return err
	}
	raw, err := obj.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", modelPath, err)
	}
	a.log.Info("model parsed",
		zap.String("path", modelPath),
		zap.Int("triangles", raw.Triangles()),
		zap.Int("vertices", raw.VertexCount()),
	)

	a.program, err = shader.CompileProgram(glsl.HologramVertexShader, glsl.HologramFragmentShader, hologram.Attributes)
	if err != nil {
		return fmt.Errorf("compiling hologram shader: %w", err)
	}

	a.texture = a.device.UploadTexture(a.loadTexture(a.cfg.Model))

	gpuMesh, err := mesh.Upload(a.device, raw, a.reporter)
	if err != nil {
		// Already reported; keep running with empty regions.
		gpuMesh = nil
	}

	return a.hologram.Init(hologram.Scene{
		Program: a.program,
		Texture: a.texture,
		Mesh:    gpuMesh,
	})
}

// loadTexture decodes the configured texture, falling back to a
// checkerboard when none is set or it cannot be read.
func (a *App) loadTexture(cfg config.ModelConfig) *image.RGBA {
	if cfg.Texture != "" {
		img, err := a.decodeTexture(cfg.Texture)
		if err == nil {
			return texture.Scale(texture.ToRGBA(img, true), cfg.MaxTexture)
		}
		a.log.Warn("texture unavailable, using checkerboard",
			zap.String("path", cfg.Texture),
			zap.Error(err),
		)
	}
	return texture.Checkerboard(64, 8,
		color.RGBA{R: 0x30, G: 0xd0, B: 0xff, A: 0xff},
		color.RGBA{R: 0x10, G: 0x40, B: 0x60, A: 0xff},
	)
}

func (a *App) decodeTexture(path string) (image.Image, error) {
	data, err := a.assets.Load(path)
	if err != nil {
		return nil, err
	}
	return texture.Decode(path, data)
}
