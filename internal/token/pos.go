package token

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// POS is a pair of connection class ids.
type POS struct {
	LeftID  int16
	RightID int16
}

// POSTable maps POS indexes to connection ids. It is shared by every
// dictionary built against the same POS numbering.
//
// Intern is only used while building; a loaded table is read-only.
type POSTable struct {
	mu      sync.Mutex
	entries []POS
	index   map[POS]int
}

// NewPOSTable creates an empty table.
func NewPOSTable() *POSTable {
	return &POSTable{index: make(map[POS]int)}
}

// Intern returns the index of (leftID, rightID), adding it when missing.
func (p *POSTable) Intern(leftID, rightID int16) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := POS{LeftID: leftID, RightID: rightID}
	if i, ok := p.index[key]; ok {
		return i
	}
	if p.index == nil {
		p.index = make(map[POS]int)
	}
	p.entries = append(p.entries, key)
	p.index[key] = len(p.entries) - 1
	return len(p.entries) - 1
}

// Len returns the number of entries.
func (p *POSTable) Len() int { return len(p.entries) }

// At returns entry i. Out-of-range indexes yield the zero POS.
func (p *POSTable) At(i int) POS {
	if i < 0 || i >= len(p.entries) {
		return POS{}
	}
	return p.entries[i]
}

// MarshalBinary encodes the table as [count uint32][left int16, right int16]...
func (p *POSTable) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 4+4*len(p.entries))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p.entries)))
	for _, e := range p.entries {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(e.LeftID))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(e.RightID))
	}
	return buf, nil
}

// UnmarshalPOSTable decodes a table written by MarshalBinary.
func UnmarshalPOSTable(data []byte) (*POSTable, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: missing POS count", ErrCorrupt)
	}
	n := int(binary.LittleEndian.Uint32(data))
	if len(data) != 4+4*n {
		return nil, fmt.Errorf("%w: %d POS entries need %d bytes, have %d", ErrCorrupt, n, 4+4*n, len(data))
	}
	p := &POSTable{
		entries: make([]POS, n),
		index:   make(map[POS]int, n),
	}
	for i := range p.entries {
		off := 4 + 4*i
		e := POS{
			LeftID:  int16(binary.LittleEndian.Uint16(data[off:])),
			RightID: int16(binary.LittleEndian.Uint16(data[off+2:])),
		}
		p.entries[i] = e
		if _, ok := p.index[e]; !ok {
			p.index[e] = i
		}
	}
	return p, nil
}
