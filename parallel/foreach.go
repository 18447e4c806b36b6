// Package parallel contains the bounded ForEach worker pool and the ordered Digest.
package parallel

import (
	"sync"
	"sync/atomic"
)

// ForEach calls body for every integer from 0 to length-1 using at most
// limit goroutines. It returns when all calls have returned.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return // No iterations to perform
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > length {
		limit = length
	}
	if limit == 1 {
		for i := 0; i < length; i++ {
			body(i)
		}
		return
	}

	var (
		next atomic.Int64   // next index to claim
		wg   sync.WaitGroup // waits for the workers
	)

	wg.Add(limit)
	for n := 0; n < limit; n++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= length {
					return
				}
				body(i)
			}
		}()
	}

	wg.Wait()
}

// Chunks splits length items into at most parts contiguous [begin, end) ranges
// of near equal size, in order.
func Chunks(length, parts int) (out [][2]int) {
	if length <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > length {
		parts = length
	}
	var begin int
	for p := 0; p < parts; p++ {
		end := begin + (length-begin)/(parts-p)
		out = append(out, [2]int{begin, end})
		begin = end
	}
	return
}
