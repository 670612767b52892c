package ktest

import (
	"fmt"
	"io"
	"strings"
)

// Print lays a test out the way ktest-tool does.
func Print(w io.Writer, path string, t Test) error {
	fmt.Fprintf(w, "ktest file : '%s'\n", path)
	fmt.Fprintf(w, "program    : '%s'\n", t.Program)
	fmt.Fprintf(w, "num objects: %d\n", len(t.Objects))
	for i, o := range t.Objects {
		b, err := o.Bytes()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "object %d: name: '%s'\n", i, o.Name)
		fmt.Fprintf(w, "object %d: size: %d\n", i, len(b))
		fmt.Fprintf(w, "object %d: data: b'%s'\n", i, escape(b))
		fmt.Fprintf(w, "object %d: hex : %s\n", i, o.Hex)
		if len(b) <= 8 {
			n, _ := o.Int()
			u, _ := o.Uint()
			fmt.Fprintf(w, "object %d: int : %d\n", i, n)
			fmt.Fprintf(w, "object %d: uint: %d\n", i, u)
		}
	}
	if t.Failed() {
		fmt.Fprintf(w, "error      : %s (%s)\n", t.Error, t.Message)
	} else if t.Result != nil {
		fmt.Fprintf(w, "result     : %d\n", *t.Result)
	}
	return nil
}

func escape(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7f && c != '\'' && c != '\\' {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, "\\x%02x", c)
		}
	}
	return sb.String()
}
