package audio_test

import (
	"testing"
	"time"

	"github.com/alkime/doba/internal/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		config      audio.EncoderConfig
		expectError string
	}{
		{
			name:   "valid config",
			config: audio.EncoderConfig{SampleRate: 16000, Channels: 1, BufferThreshold: 4096},
		},
		{
			name:        "zero sample rate",
			config:      audio.EncoderConfig{SampleRate: 0, Channels: 1, BufferThreshold: 4096},
			expectError: "sample rate must be positive",
		},
		{
			name:        "invalid channels",
			config:      audio.EncoderConfig{SampleRate: 16000, Channels: 2, BufferThreshold: 4096},
			expectError: "only mono (1 channel) is supported",
		},
		{
			name:        "odd buffer threshold",
			config:      audio.EncoderConfig{SampleRate: 16000, Channels: 1, BufferThreshold: 101},
			expectError: "buffer threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEncoderConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, audio.EncoderConfig{
		SampleRate:      audio.DefaultSampleRate,
		Channels:        audio.DefaultChannels,
		BufferThreshold: audio.DefaultBufferThreshold,
	}, audio.EncoderConfig{}.WithDefaults())

	assert.Equal(t, 44100, audio.EncoderConfig{SampleRate: 44100}.WithDefaults().SampleRate)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	// one second of a quiet tone
	pcm := audio.Int16ToBytes(audio.Tone{
		Frequency: 220,
		Waveform:  audio.Sine,
		Peak:      0.2,
		Duration:  time.Second,
	}.Render(16000))

	clip, err := audio.Encode(pcm, audio.EncoderConfig{SampleRate: 16000})
	require.NoError(t, err)

	assert.False(t, clip.Empty())
	assert.Equal(t, audio.MediaTypeMP3, clip.MediaType)
	assert.Equal(t, time.Second, clip.Duration)
}

func TestEncode_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := audio.Encode(nil, audio.EncoderConfig{Channels: 2})
	require.ErrorContains(t, err, "invalid encoder config")
}

func TestPCMDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 500*time.Millisecond, audio.PCMDuration(16000, 16000))
	assert.Equal(t, time.Duration(0), audio.PCMDuration(16000, 0))
}
