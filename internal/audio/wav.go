package audio

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"
)

// DecodeError reports raw bytes that are not a well-formed WAV container,
// whether they came from the cache or fresh from the backend.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode audio: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses a WAV byte stream into a Clip. Purely local, no I/O.
func Decode(raw []byte) (*Clip, error) {
	if len(raw) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("empty audio payload")}
	}

	dec := wav.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		return nil, &DecodeError{Err: fmt.Errorf("not a valid wav file")}
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if buf == nil || buf.Format == nil || buf.Format.SampleRate == 0 || buf.Format.NumChannels == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("missing format information")}
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	buf.SourceBitDepth = bitDepth

	return &Clip{buf: buf, bitDepth: bitDepth}, nil
}

// Export encodes a Clip as a WAV byte stream ready for transport.
func Export(c *Clip) ([]byte, error) {
	ws := newWriteSeeker()
	enc := wav.NewEncoder(ws, c.buf.Format.SampleRate, c.bitDepth, c.buf.Format.NumChannels, 1)

	if err := enc.Write(c.buf); err != nil {
		return nil, fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close wav encoder: %w", err)
	}

	return ws.Bytes(), nil
}
