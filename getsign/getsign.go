// Package getsign is the first function analysed in the tutorial.
package getsign

func GetSign(x int32) int32 {
	if x == 0 {
		return 0
	}
	if x < 0 {
		return -1
	}
	return 1
}

// Entry divides by a+5 before taking the sign, so a == -5 panics with an
// integer divide by zero.
func Entry(a int32) int32 {
	b := 1000 / (a + 5)
	_ = b
	return GetSign(a)
}
