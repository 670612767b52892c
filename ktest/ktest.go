// Package ktest reads and writes the test cases produced by a symbolic run.
//
// A test case names the program it was generated for and lists the concrete
// bytes chosen for every symbolic object, in the order the objects were made
// symbolic. Cases that end in a fault also carry the fault kind and message.
package ktest

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fault kinds, named after the suffix of the matching .err file.
const (
	ErrPtr      = "ptr"
	ErrOverflow = "overflow"
	ErrDiv      = "div"
)

type Object struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

type Test struct {
	Program string   `yaml:"program"`
	Objects []Object `yaml:"objects"`
	Error   string   `yaml:"error,omitempty"`
	Message string   `yaml:"message,omitempty"`
	Result  *int64   `yaml:"result,omitempty"`
}

func NewObject(name string, data []byte) Object {
	return Object{Name: name, Hex: "0x" + hex.EncodeToString(data)}
}

func (o Object) Bytes() ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(o.Hex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("object '%s': %w", o.Name, err)
	}
	return b, nil
}

// Uint decodes up to eight little-endian bytes.
func (o Object) Uint() (uint64, error) {
	b, err := o.Bytes()
	if err != nil {
		return 0, err
	}
	if len(b) > 8 {
		return 0, fmt.Errorf("object '%s' is %d bytes, too wide for an integer", o.Name, len(b))
	}
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Int is Uint sign-extended from the object's own width.
func (o Object) Int() (int64, error) {
	u, err := o.Uint()
	if err != nil {
		return 0, err
	}
	b, _ := o.Bytes()
	if len(b) == 0 {
		return 0, nil
	}
	shift := 64 - 8*len(b)
	return int64(u<<shift) >> shift, nil
}

func (t Test) Object(name string) (Object, bool) {
	for _, o := range t.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return Object{}, false
}

func (t Test) Failed() bool {
	return t.Error != ""
}

func Read(path string) (Test, error) {
	var t Test
	data, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parsing '%s': %w", path, err)
	}
	return t, nil
}

func Write(path string, t Test) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
