package harness

import (
	"slava0135/arraysum/getsign"
	"slava0135/arraysum/ktest"
	"slava0135/arraysum/symexec"
)

func getSignProgram(m *symexec.Machine) {
	a := m.Int("a", 4)
	zero := m.Const(0, 32)
	m.Assert(a.Add(m.Const(5, 32)).NE(zero), ktest.ErrDiv, "integer divide by zero")
	if m.Branch(a.Eq(zero)) {
		m.Return(zero, true)
		return
	}
	if m.Branch(a.SLT(zero)) {
		m.Return(m.Const(-1, 32), true)
		return
	}
	m.Return(m.Const(1, 32), true)
}

var getSign = Program{
	Name:        "get-sign",
	Description: "sign of a symbolic int32, after dividing 1000 by a+5",
	Source: `
func GetSign(x int32) int32 {
	if x == 0 {
		return 0
	}
	if x < 0 {
		return -1
	}
	return 1
}

func Entry(a int32) int32 {
	b := 1000 / (a + 5)
	_ = b
	return GetSign(a)
}`,
	Run: getSignProgram,
	Call: func(tc ktest.Test) (int64, error) {
		a, err := intObject(tc, "a")
		if err != nil {
			return 0, err
		}
		return int64(getsign.Entry(int32(a))), nil
	},
	Signature: symexec.Signature{
		Package: "slava0135/arraysum/getsign",
		Func:    "Entry",
		Params:  []symexec.Param{{Name: "a", Object: "a", Type: "int32"}},
		Result:  "int32",
	},
}
