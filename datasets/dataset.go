// Package datasets defines labeled items, the data source contract and the
// canonical label encoding.
package datasets

import "math/bits"

// Item is one raw input, a row major string of '0' and '1' pixels, with its label.
type Item struct {
	Input string
	Label string
}

// Source supplies training and test items plus the label encoding.
type Source interface {
	ReadTrainingData() ([]Item, error)
	ReadTestData() ([]Item, error)

	// LabelCount is the number of classes.
	LabelCount() int

	// EncodeLabel returns the canonical label of class i, 0 <= i < LabelCount.
	EncodeLabel(i int) string
}

// EncodeLabel writes i in binary, zero padded to the width needed for count classes.
func EncodeLabel(i, count int) string {
	var width = bits.Len(uint(count - 1))
	if width == 0 {
		width = 1
	}
	var buf = make([]byte, width)
	for j := range buf {
		if i&(1<<(width-1-j)) != 0 {
			buf[j] = '1'
		} else {
			buf[j] = '0'
		}
	}
	return string(buf)
}

// Labels lists the labels of a source in canonical order.
func Labels(s Source) []string {
	var out = make([]string, s.LabelCount())
	for i := range out {
		out[i] = s.EncodeLabel(i)
	}
	return out
}

// InputSize returns the length of the longest input of the sets.
func InputSize(sets ...[]Item) (size int) {
	for _, set := range sets {
		for _, item := range set {
			if len(item.Input) > size {
				size = len(item.Input)
			}
		}
	}
	return
}
