package bitvector

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

const (
	wordBits       = 64
	superblockBits = 512
	wordsPerSuper  = superblockBits / wordBits

	// sampleRate is the number of ones (or zeros) between two select hints.
	sampleRate = 512
)

// ErrMalformed is returned when encoded bits do not match their declared length.
var ErrMalformed = errors.New("bitvector: malformed bit array")

// Vector is an immutable bit sequence with rank/select support.
// All methods are safe for concurrent use.
type Vector struct {
	words []uint64
	n     int
	ones  int

	// super[i] is the number of ones in [0, i*superblockBits).
	// len(super) == numSuper+1 and super[numSuper] == ones.
	super []uint32

	sel1 []uint32
	sel0 []uint32
}

// FromWords builds a Vector of n bits over words.
// words must hold exactly ceil(n/64) entries; bits at positions >= n must be zero.
func FromWords(words []uint64, n int) (*Vector, error) {
	if n < 0 || len(words) != (n+wordBits-1)/wordBits {
		return nil, fmt.Errorf("%w: %d bits need %d words, got %d", ErrMalformed, n, (n+wordBits-1)/wordBits, len(words))
	}
	if rem := n % wordBits; rem != 0 && words[len(words)-1]>>uint(rem) != 0 {
		return nil, fmt.Errorf("%w: bits set beyond length %d", ErrMalformed, n)
	}

	v := &Vector{
		words: words,
		n:     n,
	}
	v.index()
	return v, nil
}

func (v *Vector) index() {
	numSuper := (v.n + superblockBits - 1) / superblockBits
	v.super = make([]uint32, numSuper+1)

	ones := 0
	for sb := 0; sb < numSuper; sb++ {
		v.super[sb] = uint32(ones)
		end := min((sb+1)*wordsPerSuper, len(v.words))
		for w := sb * wordsPerSuper; w < end; w++ {
			ones += bits.OnesCount64(v.words[w])
		}
	}
	v.super[numSuper] = uint32(ones)
	v.ones = ones

	v.sel1 = v.sample(ones, v.onesBefore)
	v.sel0 = v.sample(v.n-ones, v.zerosBefore)
}

// sample returns, for every sampleRate-th element, the superblock that contains it.
func (v *Vector) sample(total int, before func(sb int) int) []uint32 {
	hints := make([]uint32, 0, total/sampleRate+1)
	sb := 0
	for k := 0; k < total; k += sampleRate {
		for before(sb+1) <= k {
			sb++
		}
		hints = append(hints, uint32(sb))
	}
	return hints
}

func (v *Vector) numSuper() int { return len(v.super) - 1 }

func (v *Vector) onesBefore(sb int) int { return int(v.super[sb]) }

func (v *Vector) zerosBefore(sb int) int {
	if sb >= v.numSuper() {
		return v.n - v.ones
	}
	return sb*superblockBits - int(v.super[sb])
}

// Len returns the number of bits.
func (v *Vector) Len() int { return v.n }

// Ones returns the number of set bits.
func (v *Vector) Ones() int { return v.ones }

// Get reports whether bit i is set. Out-of-range positions read as zero.
func (v *Vector) Get(i int) bool {
	if i < 0 || i >= v.n {
		return false
	}
	return v.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// Rank1 returns the number of set bits in [0, i).
func (v *Vector) Rank1(i int) int {
	if i <= 0 {
		return 0
	}
	if i >= v.n {
		return v.ones
	}
	sb := i / superblockBits
	r := int(v.super[sb])
	w := sb * wordsPerSuper
	last := i / wordBits
	for ; w < last; w++ {
		r += bits.OnesCount64(v.words[w])
	}
	if rem := i % wordBits; rem != 0 {
		r += bits.OnesCount64(v.words[last] & (1<<uint(rem) - 1))
	}
	return r
}

// Rank0 returns the number of clear bits in [0, i).
func (v *Vector) Rank0(i int) int {
	if i <= 0 {
		return 0
	}
	if i > v.n {
		i = v.n
	}
	return i - v.Rank1(i)
}

// Select1 returns the position of the k-th set bit (k is 0-based),
// or -1 when k is out of range.
func (v *Vector) Select1(k int) int {
	if k < 0 || k >= v.ones {
		return -1
	}
	sb := v.findSuper(k, v.sel1, v.onesBefore)
	rem := k - v.onesBefore(sb)
	for w := sb * wordsPerSuper; w < len(v.words); w++ {
		word := v.words[w]
		c := bits.OnesCount64(word)
		if rem < c {
			return w*wordBits + selectInWord(word, rem)
		}
		rem -= c
	}
	return -1
}

// Select0 returns the position of the k-th clear bit (k is 0-based),
// or -1 when k is out of range.
func (v *Vector) Select0(k int) int {
	if k < 0 || k >= v.n-v.ones {
		return -1
	}
	sb := v.findSuper(k, v.sel0, v.zerosBefore)
	rem := k - v.zerosBefore(sb)
	for w := sb * wordsPerSuper; w < len(v.words); w++ {
		word := ^v.words[w]
		c := bits.OnesCount64(word)
		if rem < c {
			return w*wordBits + selectInWord(word, rem)
		}
		rem -= c
	}
	return -1
}

// findSuper returns the last superblock sb with before(sb) <= k.
func (v *Vector) findSuper(k int, hints []uint32, before func(int) int) int {
	h := k / sampleRate
	lo := int(hints[h])
	hi := v.numSuper() - 1
	if h+1 < len(hints) {
		hi = int(hints[h+1])
	}
	idx := sort.Search(hi-lo+1, func(i int) bool {
		return before(lo+i) > k
	})
	return lo + idx - 1
}

// selectInWord returns the position of the r-th set bit of x.
func selectInWord(x uint64, r int) int {
	for ; r > 0; r-- {
		x &= x - 1
	}
	return bits.TrailingZeros64(x)
}

// MarshalBinary encodes the vector as [n uint64][words...] little-endian.
func (v *Vector) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 8+8*len(v.words))
	binary.LittleEndian.PutUint64(buf, uint64(v.n))
	for i, w := range v.words {
		binary.LittleEndian.PutUint64(buf[8+8*i:], w)
	}
	return buf, nil
}

// EncodedSize returns the number of bytes MarshalBinary produces.
func (v *Vector) EncodedSize() int { return 8 + 8*len(v.words) }

// Decode reads a vector written by MarshalBinary from the front of data and
// returns the remaining bytes.
func Decode(data []byte) (*Vector, []byte, error) {
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("%w: missing length", ErrMalformed)
	}
	n := binary.LittleEndian.Uint64(data)
	if n > uint64(len(data))*8 {
		return nil, nil, fmt.Errorf("%w: declared %d bits in %d bytes", ErrMalformed, n, len(data))
	}
	numWords := (int(n) + wordBits - 1) / wordBits
	if len(data) < 8+8*numWords {
		return nil, nil, fmt.Errorf("%w: declared %d bits, have %d bytes", ErrMalformed, n, len(data)-8)
	}
	words := make([]uint64, numWords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(data[8+8*i:])
	}
	v, err := FromWords(words, int(n))
	if err != nil {
		return nil, nil, err
	}
	return v, data[8+8*numWords:], nil
}

// Builder accumulates bits for a Vector.
type Builder struct {
	set *bitset.BitSet
	n   int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{set: bitset.New(0)}
}

// Append adds one bit at the end.
func (b *Builder) Append(bit bool) {
	if bit {
		b.set.Set(uint(b.n))
	}
	b.n++
}

// AppendN adds count copies of bit.
func (b *Builder) AppendN(bit bool, count int) {
	for i := 0; i < count; i++ {
		b.Append(bit)
	}
}

// Len returns the number of bits appended so far.
func (b *Builder) Len() int { return b.n }

// Build freezes the accumulated bits into a Vector.
func (b *Builder) Build() *Vector {
	words := make([]uint64, (b.n+wordBits-1)/wordBits)
	copy(words, b.set.Words())
	v, err := FromWords(words, b.n)
	if err != nil {
		// Builder never sets bits beyond n.
		panic(err)
	}
	return v
}
