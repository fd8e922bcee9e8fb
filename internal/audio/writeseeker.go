package audio

import (
	"fmt"
	"io"
)

// writeSeeker is an in-memory io.WriteSeeker. The wav encoder needs to seek
// back to patch chunk sizes into the header, which rules out bytes.Buffer.
type writeSeeker struct {
	buf []byte
	pos int
}

func newWriteSeeker() *writeSeeker {
	return &writeSeeker{}
}

func (ws *writeSeeker) Write(p []byte) (int, error) {
	if need := ws.pos + len(p); need > len(ws.buf) {
		grown := make([]byte, need)
		copy(grown, ws.buf)
		ws.buf = grown
	}
	n := copy(ws.buf[ws.pos:], p)
	ws.pos += n
	return n, nil
}

func (ws *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(ws.pos) + offset
	case io.SeekEnd:
		pos = int64(len(ws.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative seek position %d", pos)
	}
	ws.pos = int(pos)
	return pos, nil
}

// Bytes returns the written content.
func (ws *writeSeeker) Bytes() []byte {
	return ws.buf
}
