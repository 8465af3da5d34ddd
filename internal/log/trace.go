package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// Tracer records the raw bytes crossing the adapter: inbound mouse reports
// and outbound wire frames. It lives outside the structured logger because
// hex dumps at USB poll rate would drown it.
type Tracer interface {
	Report(data []byte)
	Frame(data []byte)
}

type tracer struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTracer creates a Tracer writing to w. A nil writer yields a no-op
// tracer that is safe to call from any path.
func NewTracer(w io.Writer) Tracer {
	return &tracer{w: w}
}

// Report logs one inbound report as a single hex line.
func (t *tracer) Report(data []byte) { t.log("USB->", data) }

// Frame logs one published wire frame as a single hex line.
func (t *tracer) Frame(data []byte) { t.log("->PORT", data) }

func (t *tracer) log(dir string, data []byte) {
	if t.w == nil || len(data) == 0 {
		return
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s %d bytes: %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		len(data),
		hexbuf.String())

	t.mu.Lock()
	_, _ = t.w.Write([]byte(line))
	t.mu.Unlock()
}
