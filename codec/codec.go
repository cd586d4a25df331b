// Package codec centralizes JSON encoding of candidates and user dictionary
// records.
//
// Exported user dictionaries do not record the codec that wrote them; both
// built-in codecs produce plain JSON and can read each other's output.
package codec

import (
	"fmt"
	"io"
	"sync"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when callers pass nil.
var Default Codec = GoJSON{}

var builtin = []Codec{GoJSON{}, JSON{}}

// Names lists the built-in codec names, default first.
func Names() []string {
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name()
	}
	return names
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	for _, c := range builtin {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// MustMarshal is a helper for tests and command line tools.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

// LineWriter writes one encoded value per line (JSON Lines).
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
	c  Codec
}

// NewLineWriter returns a LineWriter encoding with c (Default when nil).
func NewLineWriter(w io.Writer, c Codec) *LineWriter {
	if c == nil {
		c = Default
	}
	return &LineWriter{w: w, c: c}
}

// Write encodes v followed by a newline.
func (lw *LineWriter) Write(v any) error {
	data, err := lw.c.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	lw.mu.Lock()
	defer lw.mu.Unlock()
	_, err = lw.w.Write(data)
	return err
}
