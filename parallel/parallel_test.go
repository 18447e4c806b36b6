package parallel

import (
	"crypto/sha256"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachVisitsEveryIndexOnce(t *testing.T) {
	for _, limit := range []int{-1, 0, 1, 3, 64, 1000} {
		var visits = make([]atomic.Int32, 257)
		ForEach(len(visits), limit, func(i int) {
			visits[i].Add(1)
		})
		for i := range visits {
			require.EqualValues(t, 1, visits[i].Load(), "limit %d index %d", limit, i)
		}
	}
}

func TestForEachEmpty(t *testing.T) {
	ForEach(0, 4, func(i int) {
		t.Fatalf("body called for empty loop")
	})
}

func TestChunks(t *testing.T) {
	tests := []struct {
		name   string
		length int
		parts  int
		want   [][2]int
	}{
		{"empty", 0, 3, nil},
		{"one part", 5, 1, [][2]int{{0, 5}}},
		{"even", 6, 3, [][2]int{{0, 2}, {2, 4}, {4, 6}}},
		{"uneven", 7, 3, [][2]int{{0, 2}, {2, 4}, {4, 7}}},
		{"more parts than items", 2, 8, [][2]int{{0, 1}, {1, 2}}},
		{"zero parts", 3, 0, [][2]int{{0, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunks(tt.length, tt.parts))
		})
	}
}

func TestDigestOrderIndependent(t *testing.T) {
	const n = 50
	var blocks [n][32]byte
	for i := range blocks {
		blocks[i] = sha256.Sum256([]byte{byte(i)})
	}

	sequential := sha256.New()
	for i := range blocks {
		sequential.Write(blocks[i][:])
	}
	var want [32]byte
	copy(want[:], sequential.Sum(nil))

	reversed := NewDigest(n)
	for i := n - 1; i >= 0; i-- {
		reversed.MustPut(i, blocks[i])
	}
	assert.Equal(t, want, reversed.Sum())

	concurrent := NewDigest(n)
	ForEach(n, 8, func(i int) {
		concurrent.MustPut(i, blocks[i])
	})
	assert.Equal(t, want, concurrent.Sum())
}

func TestDigestMisuse(t *testing.T) {
	d := NewDigest(2)
	d.MustPut(0, [32]byte{})
	assert.Panics(t, func() { d.MustPut(0, [32]byte{}) })
	assert.Panics(t, func() { d.MustPut(2, [32]byte{}) })
	assert.Panics(t, func() { d.Sum() })
}

func TestDigestEmpty(t *testing.T) {
	assert.Equal(t, sha256.Sum256(nil), NewDigest(0).Sum())
}
