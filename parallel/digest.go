package parallel

import (
	"crypto/sha256"
	"hash"
	"sync"
)

// Digest hashes n [32]byte blocks with sha256 in index order, while the
// blocks themselves may be put concurrently and out of order.
type Digest struct {
	mut     sync.Mutex
	sha     hash.Hash
	ate     int
	pending map[int][32]byte
	n       int
}

// NewDigest creates a digest expecting blocks 0 to n-1.
func NewDigest(n int) *Digest {
	return &Digest{
		sha:     sha256.New(),
		pending: make(map[int][32]byte),
		n:       n,
	}
}

// MustPut stores block i. It panics when i is out of range or was put before.
func (d *Digest) MustPut(i int, block [32]byte) {
	if i < 0 || i >= d.n {
		panic("digest block out of range")
	}
	d.mut.Lock()
	defer d.mut.Unlock()

	if _, dup := d.pending[i]; dup || i < d.ate {
		panic("duplicate digest block")
	}
	d.pending[i] = block

	// eat every block that became contiguous
	for {
		b, ok := d.pending[d.ate]
		if !ok {
			break
		}
		d.sha.Write(b[:])
		delete(d.pending, d.ate)
		d.ate++
	}
}

// Sum returns the digest. It panics unless all n blocks were put.
func (d *Digest) Sum() (ret [32]byte) {
	d.mut.Lock()
	defer d.mut.Unlock()
	if d.ate != d.n {
		panic("digest incomplete")
	}
	copy(ret[:], d.sha.Sum(nil))
	return
}
