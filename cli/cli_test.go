package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slava0135/arraysum/ktest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	for _, name := range []string{"array-a", "array-b", "array-d", "array-d-release", "array-e", "get-sign"} {
		assert.Contains(t, out, name)
	}
}

func TestRunAndReplay(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "array-a", "--output-dir", dir, "--src")
	require.NoError(t, err)
	assert.Contains(t, out, ":: analyzing program 'array-a'")
	assert.Contains(t, out, "for i := uint(0); i < index; i++ {")
	assert.Contains(t, out, ":: error: ptr: index out of range [8] with length 8")
	assert.Contains(t, out, ":: done: completed paths = 9\n")
	assert.Contains(t, out, ":: done: partially completed paths = 1\n")
	assert.Contains(t, out, ":: done: generated tests = 10\n")

	last := filepath.Join(dir, "klee-last")
	assert.FileExists(t, filepath.Join(last, ktest.FileName(10)))
	info, err := ktest.ReadInfo(last)
	require.NoError(t, err)
	assert.Equal(t, "array-a", info.Program)
	assert.Equal(t, 10, info.Tests)

	out, err = execute(t, "replay", last)
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, "[OK]"))
	assert.Contains(t, out, "ptr fault: index out of range [8] with length 8 [OK]")

	out, err = execute(t, "ktest", filepath.Join(last, ktest.FileName(1)))
	require.NoError(t, err)
	assert.Contains(t, out, "program    : 'array-a'")
	assert.Contains(t, out, "object 0: name: 'i'")
}

func TestRunNoOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "get-sign", "--no-output", "--strategy", "bfs", "--output-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, ":: done: generated tests = 4\n")
	assert.NoFileExists(t, filepath.Join(dir, "klee-last"))
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", "array-z", "--no-output")
	assert.ErrorContains(t, err, "unknown program")

	_, err = execute(t, "run", "array-e", "--no-output", "--strategy", "astar")
	assert.ErrorContains(t, err, "unknown search strategy")
}

func TestReplayMismatch(t *testing.T) {
	dir := t.TempDir()
	wrong := int64(99)
	path := filepath.Join(dir, ktest.FileName(1))
	require.NoError(t, ktest.Write(path, ktest.Test{
		Program: "array-b",
		Objects: []ktest.Object{ktest.NewObject("i", []byte{2, 0, 0, 0, 0, 0, 0, 0})},
		Result:  &wrong,
	}))
	out, err := execute(t, "replay", path)
	assert.ErrorContains(t, err, "1 of 1 test cases did not replay")
	assert.Contains(t, out, "[MISMATCH]")

	_, err = execute(t, "replay", t.TempDir())
	assert.ErrorContains(t, err, "no test cases")
}

func TestGen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sum_test.go")
	_, err := execute(t, "gen", "array-e", "-o", path)
	require.NoError(t, err)
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package array_test")
	assert.Contains(t, string(src), "func Test_SumFirstElements_1(t *testing.T) {")
}

func TestInspect(t *testing.T) {
	out, err := execute(t, "inspect", "../testdata/sum.go", "--func", "GetSign", "--blocks")
	require.NoError(t, err)
	assert.Contains(t, out, "FUNCTION")
	assert.Contains(t, out, "GetSign")
	assert.NotContains(t, out, "SumFirstElements")
	assert.Contains(t, out, "RETURN]")

	_, err = execute(t, "inspect", "../testdata/sum.go", "--func", "Nope")
	assert.ErrorContains(t, err, "no function 'Nope'")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arraysum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  strategy: random\n  max_paths: 2\n"), 0o644))
	out, err := execute(t, "--config", path, "run", "array-e", "--no-output")
	require.NoError(t, err)
	assert.Contains(t, out, ":: halting: path limit reached")
	assert.Contains(t, out, ":: done: generated tests = 2\n")
}
