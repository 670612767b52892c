package graph

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Chdir("../testdata")
	os.Exit(m.Run())
}

func byName(stats []FuncStats) map[string]FuncStats {
	res := make(map[string]FuncStats)
	for _, s := range stats {
		res[s.Name] = s
	}
	return res
}

func TestInspect(t *testing.T) {
	stats, err := Inspect("sum.go", false)
	require.NoError(t, err)
	fns := byName(stats)
	require.Contains(t, fns, "SumFirstElements")
	require.Contains(t, fns, "SumFirstElementsUnchecked")
	require.Contains(t, fns, "GetSign")
	require.Contains(t, fns, "main")

	unchecked := fns["SumFirstElementsUnchecked"]
	assert.Greater(t, unchecked.Blocks, 1)
	assert.Positive(t, unchecked.DynamicIndexes)

	sign := fns["GetSign"]
	assert.Zero(t, sign.Indexes)
	assert.GreaterOrEqual(t, sign.Blocks, 3)
}

func TestInspectNaive(t *testing.T) {
	lifted, err := Inspect("sum.go", false)
	require.NoError(t, err)
	naive, err := Inspect("sum.go", true)
	require.NoError(t, err)

	naiveFns := byName(naive)
	for _, s := range lifted {
		n, ok := naiveFns[s.Name]
		require.True(t, ok, s.Name)
		assert.GreaterOrEqual(t, n.Instrs, s.Instrs, s.Name)
	}
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect("missing.go", false)
	assert.Error(t, err)
}

func TestPrintBlocks(t *testing.T) {
	pkg, err := BuildPackage("sum.go", false)
	require.NoError(t, err)
	fn := pkg.Func("GetSign")
	require.NotNil(t, fn)

	var buf bytes.Buffer
	PrintBlocks(&buf, fn)
	out := buf.String()
	assert.Contains(t, out, "GetSign:\n")
	assert.Contains(t, out, "    RETURN]")
	assert.Contains(t, out, "        IF]")
}
