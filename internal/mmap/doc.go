// Package mmap provides read-only memory-mapped file access.
//
// Local dictionary stores map artifact files instead of reading them so that
// decoding works directly on the page cache:
//
//	m, err := mmap.Open("system/reading.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// Unix platforms use mmap(2) with a sequential madvise(2) hint; Windows uses
// CreateFileMapping/MapViewOfFile.
//
// Callers must not use the slice returned by Bytes after Close.
package mmap
