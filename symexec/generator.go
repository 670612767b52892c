package symexec

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"path"
	"strconv"
	"strings"

	"slava0135/arraysum/ktest"
)

// Param binds an argument of the tested function to the symbolic object
// that supplied it. An empty Object means the argument was left concrete
// at its zero value.
type Param struct {
	Name   string
	Object string
	Type   string
}

type Signature struct {
	Package string
	Func    string
	Params  []Param
	Result  string
}

// GenerateTests writes a _test.go file replaying every test case against
// the real function. Faulting cases expect a panic.
func GenerateTests(w io.Writer, sig Signature, tests []ktest.Test) error {
	pkg := path.Base(sig.Package)
	var f bytes.Buffer
	f.WriteString(fmt.Sprintf("package %s_test\n\n", pkg))
	f.WriteString("import (\n\t\"testing\"\n\n")
	f.WriteString(fmt.Sprintf("\t%q\n)\n\n", sig.Package))

	var argsNames []string
	for _, p := range sig.Params {
		argsNames = append(argsNames, p.Name)
	}
	argsStr := strings.Join(argsNames, ", ")
	call := fmt.Sprintf("%s.%s(%s)", pkg, sig.Func, argsStr)

	for i, tc := range tests {
		f.WriteString(fmt.Sprintf("func Test_%s_%d(t *testing.T) {\n", sig.Func, i+1))
		for _, p := range sig.Params {
			code, err := initArg(p, tc)
			if err != nil {
				return fmt.Errorf("test %d: %w", i+1, err)
			}
			f.WriteString(fmt.Sprintf("\t%s\n", code))
		}
		if tc.Failed() {
			f.WriteString("\tdefer func() {\n")
			f.WriteString("\t\tif r := recover(); r == nil {\n")
			f.WriteString(fmt.Sprintf("\t\t\tt.Errorf(\"%s(%s) did not panic; want %s fault\")\n", sig.Func, argsStr, tc.Error))
			f.WriteString("\t\t}\n\t}()\n")
			f.WriteString(fmt.Sprintf("\t%s\n", call))
		} else {
			if tc.Result == nil {
				return fmt.Errorf("test %d: result not found in test case", i+1)
			}
			f.WriteString(fmt.Sprintf("\tgot := %s\n", call))
			f.WriteString(fmt.Sprintf("\twant := %s(%d)\n", sig.Result, *tc.Result))
			f.WriteString("\tif got != want {\n")
			f.WriteString(fmt.Sprintf("\t\tt.Errorf(\"%s(%s) = %%v; want %%v\", got, want)\n", sig.Func, argsStr))
			f.WriteString("\t}\n")
		}
		f.WriteString("}\n\n")
	}

	src, err := format.Source(f.Bytes())
	if err != nil {
		return fmt.Errorf("formatting generated tests: %w", err)
	}
	_, err = w.Write(src)
	return err
}

func initArg(p Param, tc ktest.Test) (string, error) {
	o, ok := tc.Object(p.Object)
	if p.Object == "" || !ok {
		return fmt.Sprintf("var %s %s", p.Name, p.Type), nil
	}
	return initValue(p.Name, o, p.Type)
}

func initValue(name string, o ktest.Object, t string) (string, error) {
	switch t {
	case "uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
		u, err := o.Uint()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s := %s(%d)", name, t, u), nil
	case "int", "int8", "int16", "int32", "int64":
		i, err := o.Int()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s := %s(%d)", name, t, i), nil
	}
	if n, ok := byteArrayLen(t); ok {
		b, err := o.Bytes()
		if err != nil {
			return "", err
		}
		if len(b) > n {
			return "", fmt.Errorf("object '%s' has %d bytes, '%s' holds %d", o.Name, len(b), t, n)
		}
		var elems []string
		for _, v := range b {
			elems = append(elems, strconv.Itoa(int(v)))
		}
		return fmt.Sprintf("%s := %s{%s}", name, t, strings.Join(elems, ", ")), nil
	}
	return "", fmt.Errorf("unknown type '%s'", t)
}

// byteArrayLen parses [N]uint8 and [N]byte.
func byteArrayLen(t string) (int, bool) {
	rest, ok := strings.CutPrefix(t, "[")
	if !ok {
		return 0, false
	}
	size, elem, ok := strings.Cut(rest, "]")
	if !ok || (elem != "uint8" && elem != "byte") {
		return 0, false
	}
	n, err := strconv.Atoi(size)
	if err != nil {
		return 0, false
	}
	return n, true
}
