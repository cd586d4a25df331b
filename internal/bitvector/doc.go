// Package bitvector provides an immutable bit vector with constant-time rank
// and fast select.
//
// Layout:
//   - Raw bits are stored as little-endian uint64 words.
//   - Superblocks of 512 bits carry the cumulative number of set bits before them.
//   - Select hints record the superblock that holds every 512th one (and zero),
//     narrowing the binary search over superblocks to a small window.
//
// Used internally for:
//   - LOUDS tree shapes and terminal flags
//   - Token ranges per term id (unary coded)
package bitvector
