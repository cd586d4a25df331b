// Package fs abstracts the file system operations used to publish local
// dictionary artifacts.
//
// Production code uses [Default]. Tests wrap it in a [FaultyFS] to make
// writes, syncs, closes or renames fail:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("system", fs.Fault{FailOnSync: true})
//
// The interfaces take no context.Context. Local file operations are not
// interruptible at the syscall level; remote stores live in blobstore.
package fs
