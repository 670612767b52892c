package symexec

import (
	"fmt"

	"github.com/aclements/go-z3/z3"
)

const byteSize = 8

// Context owns the z3 context shared by every run of one exploration, so
// symbolic bytes made under the same name are the same constant each time.
type Context struct {
	*z3.Context

	solver  *z3.Solver
	queries int
}

func NewContext() *Context {
	ctx := z3.NewContext(nil)
	return &Context{
		Context: ctx,
		solver:  z3.NewSolver(ctx),
	}
}

func (ctx *Context) Queries() int {
	return ctx.queries
}

func (ctx *Context) check(asserts ...z3.Bool) (bool, error) {
	ctx.queries++
	ctx.solver.Push()
	defer ctx.solver.Pop()
	for _, a := range asserts {
		ctx.solver.Assert(a)
	}
	return ctx.solver.Check()
}

// model calls read with a model satisfying asserts. The model is only valid
// inside read.
func (ctx *Context) model(read func(m *z3.Model) error, asserts ...z3.Bool) (bool, error) {
	ctx.queries++
	ctx.solver.Push()
	defer ctx.solver.Pop()
	for _, a := range asserts {
		ctx.solver.Assert(a)
	}
	sat, err := ctx.solver.Check()
	if err != nil || !sat {
		return sat, err
	}
	return true, read(ctx.solver.Model())
}

func evalUint(m *z3.Model, v z3.BV) (uint64, error) {
	lit := m.Eval(v, true).(z3.BV)
	u, isLiteral, ok := lit.AsUint64()
	if !isLiteral || !ok {
		return 0, errNotLiteral(fmt.Sprint(lit))
	}
	return u, nil
}

func evalInt(m *z3.Model, v z3.BV) (int64, error) {
	lit := m.Eval(v.SToInt(), true).(z3.Int)
	i, isLiteral, ok := lit.AsInt64()
	if !isLiteral || !ok {
		return 0, errNotLiteral(fmt.Sprint(lit))
	}
	return i, nil
}

type errNotLiteral string

func (e errNotLiteral) Error() string {
	return "model value '" + string(e) + "' is not a literal"
}
