// Package hash implements the fast modular hash used to scatter pixel positions into punched cards
package hash

// Hash mixes n with the salt s and reduces the result to the range 0 to max-1.
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mixing stage, mix input with salt using subtraction
	var m = n - s

	// hashing stage, xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	m += s

	// modular stage, multiply shift instead of modulo
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// String hashes a string into the full uint32 range by chaining Hash over its bytes.
func String(str string, s uint32) (h uint32) {
	h = uint32(len(str))
	for i := 0; i < len(str); i++ {
		h = Hash(h^uint32(str[i]), s+uint32(i), 0xffffffff)
	}
	return
}

// Permutation returns a salted pseudo random permutation of 0 to n-1.
// The same n and salt always yield the same permutation.
func Permutation(n int, s uint32) []int {
	var perm = make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	// Fisher-Yates, positions drawn by the modular hash
	for i := n - 1; i > 0; i-- {
		j := int(Hash(uint32(i), s, uint32(i+1)))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
