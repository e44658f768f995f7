package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. DOBA_LOG_LEVEL.
const Prefix = "doba"

// Config holds all application configuration.
type Config struct {
	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`

	// Audio settings
	SampleRate   int           `envconfig:"SAMPLE_RATE" default:"16000"`
	MaxRecording time.Duration `envconfig:"MAX_RECORDING" default:"2m"`

	// Beat settings
	BeatVolume float64 `envconfig:"BEAT_VOLUME" default:"0.3"`
	BeatMuted  bool    `envconfig:"BEAT_MUTED" default:"false"`

	// Judging settings
	JudgeMinDelay time.Duration `envconfig:"JUDGE_MIN_DELAY" default:"1s"`
	JudgeMaxDelay time.Duration `envconfig:"JUDGE_MAX_DELAY" default:"2s"`

	// UI settings
	ShareCommand  string        `envconfig:"SHARE_COMMAND"`
	ToastDuration time.Duration `envconfig:"TOAST_DURATION" default:"3s"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process(Prefix, &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks ranges the game depends on.
func (c *Config) Validate() error {
	var errs []error

	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate must be positive, got %d", c.SampleRate))
	}

	if c.BeatVolume < 0 || c.BeatVolume > 1 {
		errs = append(errs, fmt.Errorf("beat volume must be within [0,1], got %v", c.BeatVolume))
	}

	if c.JudgeMinDelay <= 0 {
		errs = append(errs, fmt.Errorf("judge min delay must be positive, got %s", c.JudgeMinDelay))
	}

	if c.JudgeMinDelay > c.JudgeMaxDelay {
		errs = append(errs, fmt.Errorf("judge min delay %s exceeds max delay %s", c.JudgeMinDelay, c.JudgeMaxDelay))
	}

	if c.MaxRecording < 0 {
		errs = append(errs, fmt.Errorf("max recording must not be negative, got %s", c.MaxRecording))
	}

	if c.ToastDuration <= 0 {
		errs = append(errs, fmt.Errorf("toast duration must be positive, got %s", c.ToastDuration))
	}

	return errors.Join(errs...)
}
