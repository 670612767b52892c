package ktest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectDecode(t *testing.T) {
	o := NewObject("i", []byte{9, 0, 0, 0, 0, 0, 0, 0})
	assert.Equal(t, "0x0900000000000000", o.Hex)

	u, err := o.Uint()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), u)

	neg := NewObject("a", []byte{0xfb, 0xff, 0xff, 0xff})
	n, err := neg.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(-5), n)
	u, err = neg.Uint()
	require.NoError(t, err)
	assert.Equal(t, uint64(0xfffffffb), u)
}

func TestObjectTooWide(t *testing.T) {
	_, err := NewObject("arr", make([]byte, 9)).Uint()
	assert.Error(t, err)

	_, err = Object{Name: "x", Hex: "0xzz"}.Bytes()
	assert.Error(t, err)
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	result := int64(36)
	want := Test{
		Program: "array-e",
		Objects: []Object{
			NewObject("arr", []byte{1, 2, 3, 4, 5, 6, 7, 8}),
			NewObject("i", []byte{100, 0, 0, 0, 0, 0, 0, 0}),
		},
		Result: &result,
	}
	path := filepath.Join(dir, FileName(1))
	require.NoError(t, Write(path, want))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	o, ok := got.Object("arr")
	require.True(t, ok)
	b, err := o.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b)

	_, ok = got.Object("missing")
	assert.False(t, ok)
}

func TestOutputDir(t *testing.T) {
	root := t.TempDir()

	first, err := NewOutputDir(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "klee-out-0"), first)

	second, err := NewOutputDir(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "klee-out-1"), second)

	target, err := os.Readlink(filepath.Join(root, "klee-last"))
	require.NoError(t, err)
	assert.Equal(t, "klee-out-1", target)
}

func TestWriteDir(t *testing.T) {
	dir := t.TempDir()
	tests := []Test{
		{Program: "array-a", Objects: []Object{NewObject("i", []byte{0, 0, 0, 0, 0, 0, 0, 0})}},
		{
			Program: "array-a",
			Objects: []Object{NewObject("i", []byte{9, 0, 0, 0, 0, 0, 0, 0})},
			Error:   ErrPtr,
			Message: "index out of range [8] with length 8",
		},
	}
	paths, err := WriteDir(dir, tests)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	assert.FileExists(t, filepath.Join(dir, "test000002.ptr.err"))
	assert.NoFileExists(t, filepath.Join(dir, "test000001.ptr.err"))

	require.NoError(t, WriteInfo(dir, Info{Program: "array-a", Completed: 1, Partial: 1, Tests: 2}))
	info, err := ReadInfo(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Tests)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	tc := Test{
		Program: "get-sign",
		Objects: []Object{NewObject("a", []byte{0xfb, 0xff, 0xff, 0xff})},
		Error:   ErrDiv,
		Message: "integer divide by zero",
	}
	require.NoError(t, Print(&buf, "test000001.ktest", tc))
	out := buf.String()
	assert.Contains(t, out, "num objects: 1")
	assert.Contains(t, out, `object 0: data: b'\xfb\xff\xff\xff'`)
	assert.Contains(t, out, "object 0: int : -5")
	assert.Contains(t, out, "object 0: uint: 4294967291")
	assert.Contains(t, out, "error      : div (integer divide by zero)")
}
