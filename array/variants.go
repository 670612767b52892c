package array

// SumFirstElementsUnchecked trusts index. Anything above Len runs off the
// end of arr and panics at runtime.
func SumFirstElementsUnchecked(arr [Len]uint8, index uint) uint16 {
	var acc uint16
	for i := uint(0); i < index; i++ {
		acc += uint16(arr[i])
	}
	return acc
}

// SumFirstElementsNarrow is bounded but accumulates in a byte, which wraps.
func SumFirstElementsNarrow(arr [Len]uint8, index uint) uint8 {
	n := min(index, uint(len(arr)))
	var acc uint8
	for _, v := range arr[:n] {
		acc += v
	}
	return acc
}

// SumFirstElementsNarrowChecked traps on the wrap instead, panicking with
// ErrOverflow the way a build with overflow checks does.
func SumFirstElementsNarrowChecked(arr [Len]uint8, index uint) uint8 {
	n := min(index, uint(len(arr)))
	var acc uint8
	for _, v := range arr[:n] {
		if acc > 255-v {
			panic(ErrOverflow)
		}
		acc += v
	}
	return acc
}
