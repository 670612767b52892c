// Package harness marks the inputs of each exercise program symbolic and
// models the program for the executor. Every program also knows how to call
// the real Go function with the inputs of a test case, so explored paths can
// be replayed concretely.
package harness

import (
	"fmt"
	"io"
	"strings"

	"slava0135/arraysum/ktest"
	"slava0135/arraysum/symexec"
)

type Program struct {
	Name        string
	Description string
	Source      string

	Run       symexec.Program
	Call      func(tc ktest.Test) (int64, error)
	Signature symexec.Signature
}

var programs = []Program{
	arrayA,
	arrayB,
	arrayD,
	arrayDRelease,
	arrayE,
	getSign,
}

func All() []Program {
	return append([]Program(nil), programs...)
}

func Lookup(name string) (Program, error) {
	for _, p := range programs {
		if p.Name == name {
			return p, nil
		}
	}
	return Program{}, fmt.Errorf("unknown program '%s'", name)
}

func PrintSrc(w io.Writer, src string) {
	src = strings.Trim(src, "\n")
	maxLen := 0
	for _, line := range strings.Split(src, "\n") {
		len := len(line)
		if len > maxLen {
			maxLen = len
		}
	}
	fmt.Fprintln(w, strings.Repeat("%", maxLen))
	fmt.Fprintln(w, src)
	fmt.Fprintln(w, strings.Repeat("%", maxLen))
	fmt.Fprintln(w)
}

func uintObject(tc ktest.Test, name string) (uint64, error) {
	o, ok := tc.Object(name)
	if !ok {
		return 0, fmt.Errorf("test case has no object '%s'", name)
	}
	return o.Uint()
}

func intObject(tc ktest.Test, name string) (int64, error) {
	o, ok := tc.Object(name)
	if !ok {
		return 0, fmt.Errorf("test case has no object '%s'", name)
	}
	return o.Int()
}
