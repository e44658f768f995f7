package audio

import (
	"bytes"
	"fmt"
	"log/slog"

	mp3encoder "github.com/braheezy/shine-mp3/pkg/mp3"
)

// Encode converts S16LE mono PCM into an MP3 clip.
func Encode(pcm []byte, config EncoderConfig) (Clip, error) {
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return Clip{}, fmt.Errorf("invalid encoder config: %w", err)
	}

	// shine-mp3 Write() has a bug for mono (always increments by samples_per_pass * 2),
	// so the encoder runs as stereo and samples are duplicated L=R.
	encoder := mp3encoder.NewEncoder(config.SampleRate, 2)

	var out bytes.Buffer

	for start := 0; start < len(pcm); start += config.BufferThreshold {
		end := min(start+config.BufferThreshold, len(pcm))

		if err := encoder.Write(&out, toStereo(BytesToInt16(pcm[start:end]))); err != nil {
			return Clip{}, fmt.Errorf("failed to encode audio to MP3: %w", err)
		}
	}

	slog.Debug("encoded take",
		"pcmBytes", len(pcm),
		"mp3Bytes", out.Len())

	return Clip{
		Data:      out.Bytes(),
		MediaType: MediaTypeMP3,
		Duration:  PCMDuration(int64(len(pcm)), config.SampleRate),
	}, nil
}

func toStereo(mono []int16) []int16 {
	stereo := make([]int16, len(mono)*2)
	for i, sample := range mono {
		stereo[i*2] = sample
		stereo[i*2+1] = sample
	}

	return stereo
}
