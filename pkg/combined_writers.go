package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans each write out to all of its writers, e.g. stdout and
// the rotated log file. A failing writer does not stop the others.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

// Write returns the total number of bytes written over all writers, and
// all the write errors combined.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		n   int
		err error
	)
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		n += written
		err = multierr.Append(err, werr)
	}
	return n, err
}
