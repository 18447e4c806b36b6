// Package punch quantizes raw binary inputs into punched cards.
//
// A Puncher projects one input into a fixed set of independent key spaces.
// Every call on the same Puncher yields exactly one Card per key, in the
// same key order.
package punch

// Card is one (key, quantized input) pair produced by a single punch.
type Card struct {
	Key   string
	Input string
}

// Puncher turns a raw input into its punched cards.
type Puncher interface {
	// Punch returns one card per key, in Keys order.
	Punch(input string) []Card

	// Keys lists the fixed key set of this puncher.
	Keys() []string
}
