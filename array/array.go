// Package array holds the bounded prefix summer and the defective versions
// of it that the exercise steps start from.
package array

import "errors"

// Len is the fixed length of the summed array.
const Len = 8

var ErrOverflow = errors.New("attempt to add with overflow")

// SumFirstElements returns the sum of the first index elements of arr.
// An index past the end sums the whole array.
func SumFirstElements(arr [Len]uint8, index uint) uint16 {
	n := min(index, uint(len(arr)))
	var acc uint16
	for _, v := range arr[:n] {
		// Len*255 fits in 16 bits
		acc += uint16(v)
	}
	return acc
}
