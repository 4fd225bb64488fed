package util

import "sync"

// Concurrently runs thunk on concurrency goroutines and blocks until all of
// them return. Each invocation receives its worker number in [0, concurrency).
// Results are expected to be sent to a channel by thunk itself.
func Concurrently(concurrency uint, thunk func(worker uint)) {
	var wg sync.WaitGroup
	wg.Add(int(concurrency))
	for i := uint(0); i < concurrency; i++ {
		go func(worker uint) {
			defer wg.Done()
			thunk(worker)
		}(i)
	}
	wg.Wait()
}
