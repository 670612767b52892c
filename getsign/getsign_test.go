package getsign

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSign(t *testing.T) {
	tests := []struct {
		x    int32
		want int32
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{math.MaxInt32, 1},
		{math.MinInt32, -1},
	}
	for _, tt := range tests {
		if got := GetSign(tt.x); got != tt.want {
			t.Errorf("GetSign(%d) = %d; want %d", tt.x, got, tt.want)
		}
	}
}

func TestEntry(t *testing.T) {
	assert.Equal(t, int32(1), Entry(7))
	assert.Equal(t, int32(0), Entry(0))
	assert.Equal(t, int32(-1), Entry(-6))
	// a+5 wraps, no fault
	assert.Equal(t, int32(1), Entry(math.MaxInt32))
	assert.PanicsWithError(t, "runtime error: integer divide by zero", func() {
		Entry(-5)
	})
}
