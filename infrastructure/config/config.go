// Package config loads application configuration from environment
// variables with an optional YAML overlay, validates it, and projects the
// layout section into the domain configuration the engines consume.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	domaincfg "github.com/xFoundry/mentor-hub-canvas/domain/config"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Environment string `yaml:"environment" validate:"required,oneof=development staging production"`
	LogLevel    string `yaml:"log_level" validate:"required,oneof=debug info warn error"`

	MetricsNamespace string `yaml:"metrics_namespace" validate:"required"`

	Canvas  CanvasConfig  `yaml:"canvas"`
	Context ContextConfig `yaml:"context"`
}

// CanvasConfig holds the layout constants of both canvas flavors.
type CanvasConfig struct {
	HexSize            float64 `yaml:"hex_size" validate:"gt=0"`
	MaxHexSearchRadius int     `yaml:"max_hex_search_radius" validate:"gt=0"`

	BaseRadius     float64 `yaml:"base_radius" validate:"gt=0"`
	RingStep       float64 `yaml:"ring_step" validate:"gt=0"`
	MaxRings       int     `yaml:"max_rings" validate:"gt=0"`
	ArcLength      float64 `yaml:"arc_length" validate:"gt=0"`
	MinSteps       int     `yaml:"min_steps" validate:"gt=0"`
	Gutter         float64 `yaml:"gutter" validate:"gte=0"`
	FallbackOffset float64 `yaml:"fallback_offset" validate:"gt=0"`

	BoundaryCacheSize int `yaml:"boundary_cache_size" validate:"gt=0"`
}

// ContextConfig holds the token-estimation bounds.
type ContextConfig struct {
	DocumentSliceLimit int `yaml:"document_slice_limit" validate:"gt=0"`
	TableSampleRows    int `yaml:"table_sample_rows" validate:"gt=0"`
	CharsPerToken      int `yaml:"chars_per_token" validate:"gt=0"`
	RecentMessageLimit int `yaml:"recent_message_limit" validate:"gt=0"`
}

// Load builds the configuration from defaults, environment variables, and
// an optional YAML file at path (empty path skips the overlay). The YAML
// overlay wins over environment values, matching how deploy manifests pin
// settings.
func Load(path string) (*AppConfig, error) {
	cfg := defaults()
	applyEnv(cfg)

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func defaults() *AppConfig {
	domain := domaincfg.DefaultDomainConfig()
	return &AppConfig{
		Environment:      "development",
		LogLevel:         "info",
		MetricsNamespace: "mentorhub_canvas",
		Canvas: CanvasConfig{
			HexSize:            domain.HexSize,
			MaxHexSearchRadius: domain.MaxHexSearchRadius,
			BaseRadius:         domain.BaseRadius,
			RingStep:           domain.RingStep,
			MaxRings:           domain.MaxRings,
			ArcLength:          domain.ArcLength,
			MinSteps:           domain.MinSteps,
			Gutter:             domain.Gutter,
			FallbackOffset:     domain.FallbackOffset,
			BoundaryCacheSize:  128,
		},
		Context: ContextConfig{
			DocumentSliceLimit: domain.DocumentSliceLimit,
			TableSampleRows:    domain.TableSampleRows,
			CharsPerToken:      domain.CharsPerToken,
			RecentMessageLimit: domain.RecentMessageLimit,
		},
	}
}

func applyEnv(cfg *AppConfig) {
	cfg.Environment = getEnv("CANVAS_ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnv("CANVAS_LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsNamespace = getEnv("CANVAS_METRICS_NAMESPACE", cfg.MetricsNamespace)

	cfg.Canvas.HexSize = getEnvFloat("CANVAS_HEX_SIZE", cfg.Canvas.HexSize)
	cfg.Canvas.MaxHexSearchRadius = getEnvInt("CANVAS_MAX_HEX_SEARCH_RADIUS", cfg.Canvas.MaxHexSearchRadius)
	cfg.Canvas.BaseRadius = getEnvFloat("CANVAS_BASE_RADIUS", cfg.Canvas.BaseRadius)
	cfg.Canvas.RingStep = getEnvFloat("CANVAS_RING_STEP", cfg.Canvas.RingStep)
	cfg.Canvas.MaxRings = getEnvInt("CANVAS_MAX_RINGS", cfg.Canvas.MaxRings)
	cfg.Canvas.ArcLength = getEnvFloat("CANVAS_ARC_LENGTH", cfg.Canvas.ArcLength)
	cfg.Canvas.MinSteps = getEnvInt("CANVAS_MIN_STEPS", cfg.Canvas.MinSteps)
	cfg.Canvas.Gutter = getEnvFloat("CANVAS_GUTTER", cfg.Canvas.Gutter)
	cfg.Canvas.FallbackOffset = getEnvFloat("CANVAS_FALLBACK_OFFSET", cfg.Canvas.FallbackOffset)
	cfg.Canvas.BoundaryCacheSize = getEnvInt("CANVAS_BOUNDARY_CACHE_SIZE", cfg.Canvas.BoundaryCacheSize)

	cfg.Context.DocumentSliceLimit = getEnvInt("CANVAS_DOCUMENT_SLICE_LIMIT", cfg.Context.DocumentSliceLimit)
	cfg.Context.TableSampleRows = getEnvInt("CANVAS_TABLE_SAMPLE_ROWS", cfg.Context.TableSampleRows)
	cfg.Context.CharsPerToken = getEnvInt("CANVAS_CHARS_PER_TOKEN", cfg.Context.CharsPerToken)
	cfg.Context.RecentMessageLimit = getEnvInt("CANVAS_RECENT_MESSAGE_LIMIT", cfg.Context.RecentMessageLimit)
}

// ToDomain projects the layout and context sections onto the domain
// configuration, keeping node size defaults from the domain package.
func (c *AppConfig) ToDomain() *domaincfg.DomainConfig {
	domain := domaincfg.DefaultDomainConfig()

	domain.HexSize = c.Canvas.HexSize
	domain.MaxHexSearchRadius = c.Canvas.MaxHexSearchRadius
	domain.BaseRadius = c.Canvas.BaseRadius
	domain.RingStep = c.Canvas.RingStep
	domain.MaxRings = c.Canvas.MaxRings
	domain.ArcLength = c.Canvas.ArcLength
	domain.MinSteps = c.Canvas.MinSteps
	domain.Gutter = c.Canvas.Gutter
	domain.FallbackOffset = c.Canvas.FallbackOffset

	domain.DocumentSliceLimit = c.Context.DocumentSliceLimit
	domain.TableSampleRows = c.Context.TableSampleRows
	domain.CharsPerToken = c.Context.CharsPerToken
	domain.RecentMessageLimit = c.Context.RecentMessageLimit

	return domain
}

// IsDevelopment reports whether the development environment is configured
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
