// Package cache provides a byte-bounded LRU cache for immutable blobs.
//
// Remote blob stores wrap it so that optional dictionaries released under
// memory pressure can be reloaded without another round trip. When a
// resource.Controller is supplied, cached bytes count against its memory
// budget and entries that do not fit are simply not cached.
package cache
