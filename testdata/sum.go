package main

const Len = 8

func SumFirstElements(arr [Len]uint8, index uint) uint16 {
	n := min(index, uint(len(arr)))
	var acc uint16
	for _, v := range arr[:n] {
		acc += uint16(v)
	}
	return acc
}

func SumFirstElementsUnchecked(arr [Len]uint8, index uint) uint16 {
	var acc uint16
	for i := uint(0); i < index; i++ {
		acc += uint16(arr[i])
	}
	return acc
}

func GetSign(x int32) int32 {
	if x == 0 {
		return 0
	}
	if x < 0 {
		return -1
	}
	return 1
}

func main() {
	var arr [Len]uint8
	_ = SumFirstElements(arr, 3)
}
