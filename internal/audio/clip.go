// Package audio provides the in-memory clip representation used to build a
// narration: decoded PCM that can be measured, concatenated and re-encoded
// as WAV.
package audio

import (
	"errors"
	"time"

	goaudio "github.com/go-audio/audio"
)

// ErrFormatMismatch is returned when two clips with different sample rates
// or channel counts are concatenated.
var ErrFormatMismatch = errors.New("audio clips have mismatched formats")

// Clip is a decoded audio segment. Clips are immutable: Append returns a
// new clip and never modifies its operands.
type Clip struct {
	buf      *goaudio.IntBuffer
	bitDepth int
}

// Format describes a clip's PCM layout.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Format returns the clip's PCM layout.
func (c *Clip) Format() Format {
	return Format{
		SampleRate: c.buf.Format.SampleRate,
		Channels:   c.buf.Format.NumChannels,
		BitDepth:   c.bitDepth,
	}
}

// Duration returns the clip's play time.
func (c *Clip) Duration() time.Duration {
	frames := len(c.buf.Data) / c.buf.Format.NumChannels
	return time.Duration(int64(frames) * int64(time.Second) / int64(c.buf.Format.SampleRate))
}

// Samples returns the number of interleaved samples in the clip.
func (c *Clip) Samples() int {
	return len(c.buf.Data)
}

// Data returns a copy of the clip's interleaved PCM samples.
func (c *Clip) Data() []int {
	data := make([]int, len(c.buf.Data))
	copy(data, c.buf.Data)
	return data
}

// FromSamples builds a clip from interleaved PCM samples. Used by callers
// that generate audio rather than decode it.
func FromSamples(data []int, f Format) *Clip {
	return &Clip{
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				SampleRate:  f.SampleRate,
				NumChannels: f.Channels,
			},
			Data:           data,
			SourceBitDepth: f.BitDepth,
		},
		bitDepth: f.BitDepth,
	}
}

// Append returns a new clip playing c followed by other. Both clips must
// share the same sample rate and channel count.
func (c *Clip) Append(other *Clip) (*Clip, error) {
	if c.buf.Format.SampleRate != other.buf.Format.SampleRate ||
		c.buf.Format.NumChannels != other.buf.Format.NumChannels {
		return nil, ErrFormatMismatch
	}

	data := make([]int, 0, len(c.buf.Data)+len(other.buf.Data))
	data = append(data, c.buf.Data...)
	data = append(data, other.buf.Data...)

	return &Clip{
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				SampleRate:  c.buf.Format.SampleRate,
				NumChannels: c.buf.Format.NumChannels,
			},
			Data:           data,
			SourceBitDepth: c.buf.SourceBitDepth,
		},
		bitDepth: c.bitDepth,
	}, nil
}

// Silence returns a blank clip of duration d in the given format.
func Silence(d time.Duration, f Format) *Clip {
	frames := int(float64(f.SampleRate) * d.Seconds())
	return &Clip{
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				SampleRate:  f.SampleRate,
				NumChannels: f.Channels,
			},
			Data:           make([]int, frames*f.Channels),
			SourceBitDepth: f.BitDepth,
		},
		bitDepth: f.BitDepth,
	}
}
