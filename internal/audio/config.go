package audio

import (
	"github.com/gen2brain/malgo"
)

const (
	// DefaultSampleRate is used for both the microphone and the speaker.
	DefaultSampleRate = 16000
	// DefaultChannels is mono; everything in the game is mono.
	DefaultChannels = 1
	// bytesPerSample for S16LE.
	bytesPerSample = 2
)

type DeviceConfig struct {
	Format           malgo.FormatType
	CaptureChannels  int
	PlaybackChannels int
	SampleRate       int
}

// DefaultDeviceConfig returns the S16 mono configuration the game runs on.
func DefaultDeviceConfig(sampleRate int) *DeviceConfig {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	return &DeviceConfig{
		Format:           malgo.FormatS16,
		CaptureChannels:  DefaultChannels,
		PlaybackChannels: DefaultChannels,
		SampleRate:       sampleRate,
	}
}
