// Package graph builds the SSA form of a single Go file and measures it.
package graph

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"sort"
	"strings"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

type Register interface {
	Type() types.Type
	Name() string
}

type FuncStats struct {
	Name   string
	Blocks int
	Instrs int
	// Index and IndexAddr instructions, and those among them whose index
	// is not a constant and so needs a bounds check at runtime.
	Indexes        int
	DynamicIndexes int
}

// BuildPackage builds filename on its own. naive keeps locals in memory
// instead of lifting them to registers, like an unoptimised build.
func BuildPackage(filename string, naive bool) (*ssa.Package, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, nil, 0)
	if err != nil {
		return nil, err
	}

	files := []*ast.File{f}

	pkg := types.NewPackage(f.Name.Name, "")

	var mode ssa.BuilderMode
	if naive {
		mode |= ssa.NaiveForm
	}
	main, _, err := ssautil.BuildPackage(&types.Config{Importer: importer.Default()}, fset, pkg, files, mode)
	if err != nil {
		return nil, fmt.Errorf("building SSA for '%s': %w", filename, err)
	}
	return main, nil
}

func Functions(pkg *ssa.Package) []*ssa.Function {
	var fns []*ssa.Function
	for _, v := range pkg.Members {
		if fn, ok := v.(*ssa.Function); ok && fn.Name() != "init" {
			fns = append(fns, fn)
		}
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].Name() < fns[j].Name() })
	return fns
}

func Inspect(filename string, naive bool) ([]FuncStats, error) {
	pkg, err := BuildPackage(filename, naive)
	if err != nil {
		return nil, err
	}
	var stats []FuncStats
	for _, fn := range Functions(pkg) {
		stats = append(stats, Stats(fn))
	}
	return stats, nil
}

func Stats(fn *ssa.Function) FuncStats {
	s := FuncStats{Name: fn.Name(), Blocks: len(fn.Blocks)}
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			s.Instrs++
			var index ssa.Value
			switch v := instr.(type) {
			case *ssa.Index:
				index = v.Index
			case *ssa.IndexAddr:
				index = v.Index
			default:
				continue
			}
			s.Indexes++
			if _, ok := index.(*ssa.Const); !ok {
				s.DynamicIndexes++
			}
		}
	}
	return s
}

func PrintBlocks(w io.Writer, fn *ssa.Function) {
	fmt.Fprintf(w, "%s:\n", fn.Name())
	for _, v := range fn.Blocks {
		fmt.Fprintln(w, v.String(), "->")
		for _, v := range v.Instrs {
			name := instrName(v)
			if reg, ok := v.(Register); ok {
				fmt.Fprintf(w, "  [%10s] %s:%s <-- %s\n", strings.ToUpper(name), reg.Name(), reg.Type(), v.String())
			} else {
				fmt.Fprintf(w, "  [%10s] %s\n", strings.ToUpper(name), v.String())
			}
		}
	}
}

func instrName(v ssa.Instruction) string {
	switch v.(type) {
	case *ssa.Alloc:
		return "alloc"
	case *ssa.BinOp:
		return "binop"
	case *ssa.Call:
		return "call"
	case *ssa.Convert:
		return "convert"
	case *ssa.Extract:
		return "extract"
	case *ssa.Field:
		return "field"
	case *ssa.FieldAddr:
		return "field addr"
	case *ssa.If:
		return "if"
	case *ssa.Index:
		return "index"
	case *ssa.IndexAddr:
		return "index addr"
	case *ssa.Jump:
		return "jump"
	case *ssa.Lookup:
		return "lookup"
	case *ssa.MakeMap:
		return "make map"
	case *ssa.MakeSlice:
		return "make slice"
	case *ssa.MapUpdate:
		return "map update"
	case *ssa.Phi:
		return "phi"
	case *ssa.Return:
		return "return"
	case *ssa.Select:
		return "select"
	case *ssa.Slice:
		return "slice"
	case *ssa.Store:
		return "store"
	case *ssa.UnOp:
		return "unop"
	default:
		return strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", v), "*ssa."))
	}
}
