package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"facewarp/internal/displacement"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadEnv.
const (
	EnvWorkers       = "FACEWARP_WORKERS"
	EnvOutputDir     = "FACEWARP_OUTPUT_DIR"
	EnvFormat        = "FACEWARP_FORMAT"
	EnvInterpolation = "FACEWARP_INTERPOLATION"
	EnvLogLevel      = "FACEWARP_LOG_LEVEL"
	EnvLogFile       = "FACEWARP_LOG_FILE"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
	FormatJPEG = "jpg"
)

// Config holds batch paths and edit settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir" toml:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" toml:"output_dir" yaml:"output_dir"`
	Recipe    string `json:"recipe" toml:"recipe" yaml:"recipe"`
	Manifest  string `json:"manifest" toml:"manifest" yaml:"manifest"`

	// Preset used when no recipe is given
	Action string `json:"action" toml:"action" yaml:"action"`

	// Inputs and outputs
	LandmarkSuffix string `json:"landmark_suffix" toml:"landmark_suffix" yaml:"landmark_suffix"`
	Format         string `json:"format" toml:"format" yaml:"format"`
	WriteLandmarks bool   `json:"write_landmarks" toml:"write_landmarks" yaml:"write_landmarks"`
	MaxSize        int    `json:"max_size" toml:"max_size" yaml:"max_size"`

	// Warp settings, used when the recipe does not set its own
	Interpolation string `json:"interpolation" toml:"interpolation" yaml:"interpolation"`
	EdgeAnchors   int    `json:"edge_anchors" toml:"edge_anchors" yaml:"edge_anchors"`

	Workers  int    `json:"workers" toml:"workers" yaml:"workers"`
	LogLevel string `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFile  string `json:"log_file" toml:"log_file" yaml:"log_file"`
}

// Load reads a config file, picking the decoder by extension: .json,
// .toml, .yaml or .yml. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: unsupported config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv reads FACEWARP_* variables, after loading a .env file from the
// working directory if there is one.
func LoadEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		OutputDir:     getenv(EnvOutputDir),
		Format:        getenv(EnvFormat),
		Interpolation: getenv(EnvInterpolation),
		LogLevel:      getenv(EnvLogLevel),
		LogFile:       getenv(EnvLogFile),
	}
	if raw := strings.TrimSpace(getenv(EnvWorkers)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s=%q: %w", EnvWorkers, raw, err)
		}
		cfg.Workers = n
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir      string
	OutputDir     string
	Recipe        string
	Action        string
	Format        string
	Interpolation string
	Workers       int
	MaxSize       int
	LogLevel      string
	LogFile       string
}

// Resolve fills in the final settings. CLI flags take priority when
// non-zero/non-empty, then the config file (the receiver), then env, then
// defaults.
func (c *Config) Resolve(flags Flags, env Config) {
	// CLI flags override config file
	setString(&c.InputDir, flags.InputDir)
	setString(&c.OutputDir, flags.OutputDir)
	setString(&c.Recipe, flags.Recipe)
	setString(&c.Action, flags.Action)
	setString(&c.Format, flags.Format)
	setString(&c.Interpolation, flags.Interpolation)
	setString(&c.LogLevel, flags.LogLevel)
	setString(&c.LogFile, flags.LogFile)
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.MaxSize > 0 {
		c.MaxSize = flags.MaxSize
	}

	// Environment fills what neither set
	fillString(&c.OutputDir, env.OutputDir)
	fillString(&c.Format, env.Format)
	fillString(&c.Interpolation, env.Interpolation)
	fillString(&c.LogLevel, env.LogLevel)
	fillString(&c.LogFile, env.LogFile)
	if c.Workers <= 0 {
		c.Workers = env.Workers
	}

	// Defaults
	if c.OutputDir == "" && c.InputDir != "" {
		c.OutputDir = filepath.Join(c.InputDir, "warped")
	}
	if c.Manifest == "" && c.OutputDir != "" {
		c.Manifest = filepath.Join(c.OutputDir, "manifest.json")
	}
	fillString(&c.LandmarkSuffix, ".landmarks.json")
	fillString(&c.Format, FormatWebP)
	fillString(&c.Interpolation, displacement.Linear)
	fillString(&c.LogLevel, "info")
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Format == "jpeg" {
		c.Format = FormatJPEG
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings no batch run can use.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatWebP, FormatPNG, FormatJPEG:
	default:
		return fmt.Errorf("config: unsupported output format %q", c.Format)
	}
	known := false
	for _, k := range displacement.Kernels {
		if k == c.Interpolation {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("config: unknown interpolation %q", c.Interpolation)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("config: max_size must not be negative, got %d", c.MaxSize)
	}
	if c.EdgeAnchors < 0 {
		return fmt.Errorf("config: edge_anchors must not be negative, got %d", c.EdgeAnchors)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
