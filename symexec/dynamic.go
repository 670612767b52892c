package symexec

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"slava0135/arraysum/ktest"
)

// State is a path to explore, given as the outcome of every branch taken
// from the start of the program. A run replays the prefix and explores
// freely past it.
type State struct {
	id      int
	choices []bool
}

func (s *State) ID() int {
	return s.id
}

func (s *State) Depth() int {
	return len(s.choices)
}

type object struct {
	name  string
	bytes []z3.BV
}

// abort ends a run at a fault.
type abort struct {
	kind string
	msg  string
}

type solverFailure struct {
	err error
}

// Machine is what a Program sees while it runs along one path.
type Machine struct {
	ctx   *Context
	state *State

	taken []bool
	path  []z3.Bool

	objects []object
	result  *z3.BV
	signed  bool

	forks []*State
}

func newMachine(ctx *Context, state *State) *Machine {
	return &Machine{ctx: ctx, state: state}
}

// MakeSymbolic marks size bytes named name as unconstrained input.
func (m *Machine) MakeSymbolic(name string, size int) []z3.BV {
	for _, o := range m.objects {
		if o.name == name {
			panic(fmt.Sprintf("object '%s' is already symbolic", name))
		}
	}
	bytes := make([]z3.BV, size)
	for i := range bytes {
		bytes[i] = m.ctx.BVConst(fmt.Sprintf("%s[%d]", name, i), byteSize)
	}
	m.objects = append(m.objects, object{name: name, bytes: bytes})
	return bytes
}

// Uint makes a symbolic size-byte little-endian integer.
func (m *Machine) Uint(name string, size int) z3.BV {
	bytes := m.MakeSymbolic(name, size)
	v := bytes[size-1]
	for i := size - 2; i >= 0; i-- {
		v = v.Concat(bytes[i])
	}
	return v
}

// Int is Uint; signedness lives in the operations applied to the value.
func (m *Machine) Int(name string, size int) z3.BV {
	return m.Uint(name, size)
}

func (m *Machine) Const(v int64, bits int) z3.BV {
	return m.ctx.FromInt(v, m.ctx.BVSort(bits)).(z3.BV)
}

func (m *Machine) Bool(b bool) z3.Bool {
	return m.ctx.FromBool(b)
}

// Branch decides cond on the current path. When both outcomes are feasible
// the true side is followed and the false side is queued as a new state.
func (m *Machine) Branch(cond z3.Bool) bool {
	depth := len(m.taken)
	var take bool
	if depth < len(m.state.choices) {
		take = m.state.choices[depth]
	} else {
		thenOK := m.feasible(cond)
		elseOK := m.feasible(cond.Not())
		switch {
		case thenOK && elseOK:
			take = true
			m.fork(false)
		case thenOK:
			take = true
		case elseOK:
			take = false
		default:
			panic(&solverFailure{fmt.Errorf("path %v has no feasible successor", m.taken)})
		}
	}
	m.taken = append(m.taken, take)
	if take {
		m.path = append(m.path, cond)
	} else {
		m.path = append(m.path, cond.Not())
	}
	return take
}

// Assert ends the path with a fault of the given kind on every input where
// ok can be false, and continues with ok assumed otherwise.
func (m *Machine) Assert(ok z3.Bool, kind string, msg string) {
	if !m.Branch(ok) {
		m.Abort(kind, msg)
	}
}

func (m *Machine) Abort(kind string, msg string) {
	panic(&abort{kind: kind, msg: msg})
}

func (m *Machine) Return(v z3.BV, signed bool) {
	m.result = &v
	m.signed = signed
}

func (m *Machine) feasible(cond z3.Bool) bool {
	asserts := append(append([]z3.Bool(nil), m.path...), cond)
	sat, err := m.ctx.check(asserts...)
	if err != nil {
		panic(&solverFailure{err})
	}
	return sat
}

func (m *Machine) fork(alt bool) {
	choices := make([]bool, len(m.taken), len(m.taken)+1)
	copy(choices, m.taken)
	m.forks = append(m.forks, &State{choices: append(choices, alt)})
}

// testcase solves the finished path for concrete object values.
func (m *Machine) testcase(program string) (ktest.Test, error) {
	tc := ktest.Test{Program: program}
	read := func(model *z3.Model) error {
		for _, o := range m.objects {
			data := make([]byte, len(o.bytes))
			for i, b := range o.bytes {
				u, err := evalUint(model, b)
				if err != nil {
					return err
				}
				data[i] = byte(u)
			}
			tc.Objects = append(tc.Objects, ktest.NewObject(o.name, data))
		}
		if m.result != nil {
			var r int64
			if m.signed {
				i, err := evalInt(model, *m.result)
				if err != nil {
					return err
				}
				r = i
			} else {
				u, err := evalUint(model, *m.result)
				if err != nil {
					return err
				}
				r = int64(u)
			}
			tc.Result = &r
		}
		return nil
	}
	sat, err := m.ctx.model(read, m.path...)
	if err != nil {
		return tc, err
	}
	if !sat {
		return tc, fmt.Errorf("path %v is infeasible", m.taken)
	}
	return tc, nil
}
