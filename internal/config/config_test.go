package config_test

import (
	"testing"
	"time"

	"github.com/alkime/doba/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, 16000, cfg.SampleRate)
	assert.Equal(t, 2*time.Minute, cfg.MaxRecording)
	assert.InDelta(t, 0.3, cfg.BeatVolume, 1e-9)
	assert.False(t, cfg.BeatMuted)
	assert.Equal(t, time.Second, cfg.JudgeMinDelay)
	assert.Equal(t, 2*time.Second, cfg.JudgeMaxDelay)
	assert.Empty(t, cfg.ShareCommand)
	assert.Equal(t, 3*time.Second, cfg.ToastDuration)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DOBA_LOG_LEVEL", "debug")
	t.Setenv("DOBA_BEAT_VOLUME", "0.8")
	t.Setenv("DOBA_BEAT_MUTED", "true")
	t.Setenv("DOBA_JUDGE_MIN_DELAY", "10ms")
	t.Setenv("DOBA_JUDGE_MAX_DELAY", "20ms")
	t.Setenv("DOBA_SHARE_COMMAND", "termux-share")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.8, cfg.BeatVolume, 1e-9)
	assert.True(t, cfg.BeatMuted)
	assert.Equal(t, 10*time.Millisecond, cfg.JudgeMinDelay)
	assert.Equal(t, 20*time.Millisecond, cfg.JudgeMaxDelay)
	assert.Equal(t, "termux-share", cfg.ShareCommand)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DOBA_BEAT_VOLUME", "1.5")

	_, err := config.LoadConfig()
	require.ErrorContains(t, err, "beat volume")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := config.Config{
		SampleRate:    16000,
		BeatVolume:    0.3,
		JudgeMinDelay: time.Second,
		JudgeMaxDelay: 2 * time.Second,
		ToastDuration: 3 * time.Second,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{"zero sample rate", func(c *config.Config) { c.SampleRate = 0 }, "sample rate"},
		{"negative volume", func(c *config.Config) { c.BeatVolume = -0.1 }, "beat volume"},
		{"delays reversed", func(c *config.Config) { c.JudgeMinDelay = 3 * time.Second }, "exceeds"},
		{"negative max recording", func(c *config.Config) { c.MaxRecording = -time.Second }, "max recording"},
		{"zero toast", func(c *config.Config) { c.ToastDuration = 0 }, "toast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid
			tt.mutate(&c)
			require.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
