// Package resource implements the Controller that bounds dictionary loading.
//
// The Controller manages three resource types:
//
//   - Memory: budget for decoded optional dictionaries (non-blocking, fail-fast)
//   - Concurrency: number of dictionaries decoded at once
//   - IO: read throughput from blob stores (token bucket)
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20,
//	})
//
//	if err := rc.AcquireMemory(size); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(size)
//
// A nil *Controller is valid and imposes no limits.
package resource
