package harness

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"slava0135/arraysum/array"
	"slava0135/arraysum/ktest"
	"slava0135/arraysum/symexec"
)

const usizeBytes = 8

type sumVariant struct {
	symbolicArray  bool
	clamp          bool
	accBits        int
	overflowChecks bool
}

func sumFirstElements(v sumVariant) symexec.Program {
	return func(m *symexec.Machine) {
		index := m.Uint("i", usizeBytes)
		arr := make([]z3.BV, array.Len)
		if v.symbolicArray {
			arr = m.MakeSymbolic("arr", array.Len)
		} else {
			for i := range arr {
				arr[i] = m.Const(0, 8)
			}
		}

		bound := index
		if v.clamp {
			n := m.Const(array.Len, 8*usizeBytes)
			bound = index.ULT(n).IfThenElse(index, n).(z3.BV)
		}

		acc := m.Const(0, v.accBits)
		for i := 0; ; i++ {
			if !m.Branch(m.Const(int64(i), 8*usizeBytes).ULT(bound)) {
				break
			}
			if i >= array.Len {
				m.Abort(ktest.ErrPtr, fmt.Sprintf("index out of range [%d] with length %d", i, array.Len))
			}
			x := arr[i]
			if v.accBits > 8 {
				x = x.ZeroExtend(v.accBits - 8)
			}
			if v.overflowChecks {
				carry := acc.ZeroExtend(1).Add(x.ZeroExtend(1)).Extract(v.accBits, v.accBits)
				m.Assert(carry.Eq(m.Const(0, 1)), ktest.ErrOverflow, array.ErrOverflow.Error())
			}
			acc = acc.Add(x)
		}
		m.Return(acc, false)
	}
}

func concreteArray(tc ktest.Test) ([array.Len]uint8, error) {
	var arr [array.Len]uint8
	o, ok := tc.Object("arr")
	if !ok {
		return arr, fmt.Errorf("test case has no object 'arr'")
	}
	b, err := o.Bytes()
	if err != nil {
		return arr, err
	}
	if len(b) != array.Len {
		return arr, fmt.Errorf("object 'arr' has %d bytes, want %d", len(b), array.Len)
	}
	copy(arr[:], b)
	return arr, nil
}

func sumSignature(fn string, arrObject string, result string) symexec.Signature {
	return symexec.Signature{
		Package: "slava0135/arraysum/array",
		Func:    fn,
		Params: []symexec.Param{
			{Name: "arr", Object: arrObject, Type: fmt.Sprintf("[%d]uint8", array.Len)},
			{Name: "i", Object: "i", Type: "uint"},
		},
		Result: result,
	}
}

var arrayA = Program{
	Name:        "array-a",
	Description: "zeroed array, symbolic index, no bound on the loop",
	Source: `
func SumFirstElementsUnchecked(arr [Len]uint8, index uint) uint16 {
	var acc uint16
	for i := uint(0); i < index; i++ {
		acc += uint16(arr[i])
	}
	return acc
}`,
	Run: sumFirstElements(sumVariant{clamp: false, accBits: 16, overflowChecks: true}),
	Call: func(tc ktest.Test) (int64, error) {
		i, err := uintObject(tc, "i")
		if err != nil {
			return 0, err
		}
		var arr [array.Len]uint8
		return int64(array.SumFirstElementsUnchecked(arr, uint(i))), nil
	},
	Signature: sumSignature("SumFirstElementsUnchecked", "", "uint16"),
}

var arrayB = Program{
	Name:        "array-b",
	Description: "zeroed array, symbolic index, loop bound clamped to the array length",
	Source: `
func SumFirstElements(arr [Len]uint8, index uint) uint16 {
	n := min(index, uint(len(arr)))
	var acc uint16
	for _, v := range arr[:n] {
		acc += uint16(v)
	}
	return acc
}`,
	Run: sumFirstElements(sumVariant{clamp: true, accBits: 16, overflowChecks: true}),
	Call: func(tc ktest.Test) (int64, error) {
		i, err := uintObject(tc, "i")
		if err != nil {
			return 0, err
		}
		var arr [array.Len]uint8
		return int64(array.SumFirstElements(arr, uint(i))), nil
	},
	Signature: sumSignature("SumFirstElements", "", "uint16"),
}

var arrayD = Program{
	Name:        "array-d",
	Description: "symbolic array and index, 8-bit accumulator with overflow checks",
	Source: `
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
}`,
	Run: sumFirstElements(sumVariant{symbolicArray: true, clamp: true, accBits: 8, overflowChecks: true}),
	Call: func(tc ktest.Test) (int64, error) {
		i, err := uintObject(tc, "i")
		if err != nil {
			return 0, err
		}
		arr, err := concreteArray(tc)
		if err != nil {
			return 0, err
		}
		return int64(array.SumFirstElementsNarrowChecked(arr, uint(i))), nil
	},
	Signature: sumSignature("SumFirstElementsNarrowChecked", "arr", "uint8"),
}

var arrayDRelease = Program{
	Name:        "array-d-release",
	Description: "symbolic array and index, 8-bit accumulator that wraps silently",
	Source: `
func SumFirstElementsNarrow(arr [Len]uint8, index uint) uint8 {
	n := min(index, uint(len(arr)))
	var acc uint8
	for _, v := range arr[:n] {
		acc += v
	}
	return acc
}`,
	Run: sumFirstElements(sumVariant{symbolicArray: true, clamp: true, accBits: 8}),
	Call: func(tc ktest.Test) (int64, error) {
		i, err := uintObject(tc, "i")
		if err != nil {
			return 0, err
		}
		arr, err := concreteArray(tc)
		if err != nil {
			return 0, err
		}
		return int64(array.SumFirstElementsNarrow(arr, uint(i))), nil
	},
	Signature: sumSignature("SumFirstElementsNarrow", "arr", "uint8"),
}

var arrayE = Program{
	Name:        "array-e",
	Description: "symbolic array and index, clamped loop, 16-bit accumulator",
	Source:      arrayB.Source,
	Run:         sumFirstElements(sumVariant{symbolicArray: true, clamp: true, accBits: 16, overflowChecks: true}),
	Call: func(tc ktest.Test) (int64, error) {
		i, err := uintObject(tc, "i")
		if err != nil {
			return 0, err
		}
		arr, err := concreteArray(tc)
		if err != nil {
			return 0, err
		}
		return int64(array.SumFirstElements(arr, uint(i))), nil
	},
	Signature: sumSignature("SumFirstElements", "arr", "uint16"),
}
