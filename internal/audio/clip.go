package audio

import "time"

// MediaTypeMP3 labels clips produced by Encode.
const MediaTypeMP3 = "audio/mpeg"

// Clip is a finished recording handed from the booth to the judge.
// Nothing downstream decodes Data; it is carried as an opaque payload.
type Clip struct {
	Data      []byte
	MediaType string
	Duration  time.Duration
}

// Empty reports whether the clip carries no audio.
func (c Clip) Empty() bool {
	return len(c.Data) == 0
}

// PCMDuration returns how long n bytes of S16LE mono PCM play at sampleRate.
func PCMDuration(n int64, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}

	samples := n / bytesPerSample

	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
