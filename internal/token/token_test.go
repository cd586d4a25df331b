package token

import (
	"testing"

	"github.com/hupe1980/henkan/internal/louds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T) (*Table, *POSTable) {
	t.Helper()
	pos := NewPOSTable()
	b := NewBuilder(4, pos)
	b.Add(0, Literal(7), 3000, 10, 11)
	b.Add(0, EchoReading(), 1200, 1, 1)
	b.Add(2, EchoKatakana(), 5000, 10, 11)
	b.Add(3, Literal(42), -50, 2, 3)
	return b.Build(), pos
}

func TestTable_Tokens(t *testing.T) {
	table, pos := buildTable(t)

	assert.Equal(t, 4, table.NumTerms())
	assert.Equal(t, 4, table.Len())
	assert.Equal(t, 3, pos.Len())

	toks := table.Tokens(0)
	require.Len(t, toks, 2)
	// Ordered by cost within a term.
	assert.Equal(t, EchoReading(), toks[0].Output)
	assert.Equal(t, int16(1200), toks[0].WordCost)
	assert.Equal(t, Literal(7), toks[1].Output)
	assert.Equal(t, int16(10), toks[1].LeftID)
	assert.Equal(t, int16(11), toks[1].RightID)

	assert.Nil(t, table.Tokens(1))
	assert.Nil(t, table.Tokens(99))
	assert.Nil(t, table.Tokens(-1))

	toks = table.Tokens(2)
	require.Len(t, toks, 1)
	assert.Equal(t, OutputEchoKatakana, toks[0].Output.Kind)
	assert.Equal(t, toks[0].POSIndex, table.Tokens(0)[1].POSIndex)

	toks = table.Tokens(3)
	require.Len(t, toks, 1)
	assert.Equal(t, int16(-50), toks[0].WordCost)
	assert.Equal(t, louds.NodeIndex(42), toks[0].Output.Node)
}

func TestTable_MarshalRoundTrip(t *testing.T) {
	table, pos := buildTable(t)

	posData, err := pos.MarshalBinary()
	require.NoError(t, err)
	pos2, err := UnmarshalPOSTable(posData)
	require.NoError(t, err)
	assert.Equal(t, pos.Len(), pos2.Len())
	assert.Equal(t, pos.At(1), pos2.At(1))

	data, err := table.MarshalBinary()
	require.NoError(t, err)
	table2, err := Unmarshal(data, pos2)
	require.NoError(t, err)

	for id := louds.TermID(0); id < 4; id++ {
		assert.Equal(t, table.Tokens(id), table2.Tokens(id), "term %d", id)
	}
}

func TestUnmarshal_Corrupt(t *testing.T) {
	table, pos := buildTable(t)
	data, err := table.MarshalBinary()
	require.NoError(t, err)

	_, err = Unmarshal(data[:len(data)-1], pos)
	assert.ErrorIs(t, err, ErrCorrupt)

	// A POS table too small for the tokens is rejected.
	_, err = Unmarshal(data, NewPOSTable())
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = UnmarshalPOSTable([]byte{5, 0, 0, 0})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestPOSTable_Intern(t *testing.T) {
	pos := NewPOSTable()
	a := pos.Intern(1, 2)
	b := pos.Intern(3, 4)
	assert.Equal(t, a, pos.Intern(1, 2))
	assert.NotEqual(t, a, b)
	assert.Equal(t, POS{LeftID: 3, RightID: 4}, pos.At(b))
	assert.Equal(t, POS{}, pos.At(10))
}
