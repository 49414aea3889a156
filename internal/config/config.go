// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Model    ModelConfig    `yaml:"model"`
	Input    InputConfig    `yaml:"input"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit"`
	ClearColor [4]float32 `yaml:"clear_color"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ModelConfig selects what is displayed. Empty paths fall back to the
// built-in cube and checkerboard.
type ModelConfig struct {
	OBJ        string   `yaml:"obj"`
	Texture    string   `yaml:"texture"`
	AssetDirs  []string `yaml:"asset_dirs"`  // Searched in order for relative paths
	MaxTexture int      `yaml:"max_texture"` // Larger textures are downscaled; 0 keeps size
	Pick       bool     `yaml:"-"`
}

// InputConfig holds drag-to-rotate settings.
type InputConfig struct {
	Sensitivity float32 `yaml:"sensitivity"` // Degrees per density-independent pixel
	Density     float32 `yaml:"density"`     // 0 uses the display DPI
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ClearColor: [4]float32{0, 0, 0, 1},

			ScreenshotDir: "screenshots",
		},
		Model: ModelConfig{
			AssetDirs:  []string{"assets"},
			MaxTexture: 2048,
		},
		Input: InputConfig{
			Sensitivity: 1,
			Density:     0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
