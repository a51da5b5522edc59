// Package pool provides a sync.Pool of ring-buffer-sized byte slices, so
// repeated decode calls reuse the same handful of backing arrays instead of
// allocating a fresh sliding window every time.
//
// Buckets are sized to this decoder's actual domain rather than a generic
// byte-buffer scale: a ring buffer's size is always a power of two window
// (WBITS 16..24, see the stream header), plus a few bytes of self-copy
// slack, so bucket widths track powers of two directly, from 1 KiB up.
package pool

import (
	"math/bits"
	"sync"
)

const (
	minBucketBits = 10 // smallest bucket: 1 KiB
	maxBucketBits = 25 // one bit past the largest window, to cover slack overflow
	numBuckets    = maxBucketBits - minBucketBits + 1
)

var pools [numBuckets]sync.Pool

func init() {
	for i := range pools {
		sz := 1 << uint(minBucketBits+i)
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// bucketIndex returns the pool slot holding the smallest power-of-two
// buffer at least as large as size.
func bucketIndex(size int) int {
	if size < 1 {
		size = 1
	}
	b := bits.Len(uint(size - 1))
	switch {
	case b < minBucketBits:
		b = minBucketBits
	case b > maxBucketBits:
		b = maxBucketBits
	}
	return b - minBucketBits
}

// Get returns a byte slice of at least the requested size from the pool.
// The returned slice has length == size and may have a larger capacity.
// The caller must call Put when done.
func Get(size int) []byte {
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// Put returns a byte slice to the pool. The slice must have been obtained
// from Get.
func Put(b []byte) {
	c := cap(b)
	if c < 1<<minBucketBits {
		return
	}
	idx := bucketIndex(c)
	b = b[:c]
	pools[idx].Put(&b)
}
