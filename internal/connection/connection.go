// Package connection holds the bigram cost table between connection classes.
package connection

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrCorrupt is returned for inconsistent matrix data.
var ErrCorrupt = errors.New("connection: corrupt matrix")

// Matrix is a dense rows x cols table of int16 costs indexed by
// (right id of the preceding morpheme, left id of the following one).
// Read-only after construction.
type Matrix struct {
	rows  int
	cols  int
	costs []int16
}

// New creates a zero-filled matrix.
func New(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, costs: make([]int16, rows*cols)}
}

// Rows returns the number of right ids covered.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of left ids covered.
func (m *Matrix) Cols() int { return m.cols }

// Set stores a cost. Only used while building.
func (m *Matrix) Set(rightID, leftID int, cost int16) {
	if rightID < 0 || rightID >= m.rows || leftID < 0 || leftID >= m.cols {
		return
	}
	m.costs[rightID*m.cols+leftID] = cost
}

// Cost returns the cost of placing a morpheme with leftID after one with
// rightID. Ids outside the table cost 0.
func (m *Matrix) Cost(rightID, leftID int16) int16 {
	r, l := int(rightID), int(leftID)
	if r < 0 || r >= m.rows || l < 0 || l >= m.cols {
		return 0
	}
	return m.costs[r*m.cols+l]
}

// MarshalBinary encodes the matrix as [rows uint32][cols uint32][costs int16...].
func (m *Matrix) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 8+2*len(m.costs))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.rows))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.cols))
	for _, c := range m.costs {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(c))
	}
	return buf, nil
}

// Unmarshal decodes a matrix written by MarshalBinary.
func Unmarshal(data []byte) (*Matrix, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: missing dimensions", ErrCorrupt)
	}
	rows := int(binary.LittleEndian.Uint32(data))
	cols := int(binary.LittleEndian.Uint32(data[4:]))
	if rows < 0 || cols < 0 || uint64(len(data)-8) != 2*uint64(rows)*uint64(cols) {
		return nil, fmt.Errorf("%w: %dx%d matrix with %d bytes", ErrCorrupt, rows, cols, len(data)-8)
	}
	m := New(rows, cols)
	for i := range m.costs {
		m.costs[i] = int16(binary.LittleEndian.Uint16(data[8+2*i:]))
	}
	return m, nil
}

// ReadText parses the textual format: a "rows cols" header followed by one
// "rightID leftID cost" line per cell. Missing cells cost 0.
func ReadText(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var m *Matrix
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if m == nil {
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: header needs 2 fields", ErrCorrupt, line)
			}
			rows, err1 := strconv.Atoi(fields[0])
			cols, err2 := strconv.Atoi(fields[1])
			if err := errors.Join(err1, err2); err != nil || rows < 0 || cols < 0 {
				return nil, fmt.Errorf("%w: line %d: bad header %q", ErrCorrupt, line, text)
			}
			m = New(rows, cols)
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 fields", ErrCorrupt, line)
		}
		right, err1 := strconv.Atoi(fields[0])
		left, err2 := strconv.Atoi(fields[1])
		cost, err3 := strconv.ParseInt(fields[2], 10, 16)
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupt, line, err)
		}
		if right >= m.rows || left >= m.cols || right < 0 || left < 0 {
			return nil, fmt.Errorf("%w: line %d: cell (%d,%d) outside %dx%d", ErrCorrupt, line, right, left, m.rows, m.cols)
		}
		m.Set(right, left, int16(cost))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: empty input", ErrCorrupt)
	}
	return m, nil
}
