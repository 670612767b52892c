// Package symexec explores every feasible path of a small program whose
// inputs are marked symbolic, and turns each path into a concrete test case.
//
// Programs are ordinary Go functions driving a Machine. Branches on symbolic
// values go through Machine.Branch, which asks z3 which outcomes are
// feasible. A path that reaches a failed Machine.Assert or Machine.Abort is
// reported as partially completed with the fault attached to its test case.
package symexec

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"slava0135/arraysum/ktest"
)

type Program func(m *Machine)

type Executor struct {
	Name    string
	Program Program
	Queue   Queue

	// Stop after this many paths. Zero means no limit.
	MaxPaths int

	Log zerolog.Logger
}

type Report struct {
	Program   string
	Tests     []ktest.Test
	Completed int
	Partial   int
	Queries   int
	Truncated bool
}

func (r *Report) Faults() []ktest.Test {
	var faults []ktest.Test
	for _, tc := range r.Tests {
		if tc.Failed() {
			faults = append(faults, tc)
		}
	}
	return faults
}

func (e *Executor) Run(ctx context.Context) (*Report, error) {
	queue := e.Queue
	if queue == nil {
		queue = &DFSQueue{}
	}
	z3ctx := NewContext()
	report := &Report{Program: e.Name}
	ids := 0

	queue.push(&State{})
	for !queue.empty() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if e.MaxPaths > 0 && len(report.Tests) >= e.MaxPaths {
			e.Log.Warn().Int("pending", queue.size()).Msg("path limit reached")
			report.Truncated = true
			break
		}
		state := queue.pop()
		ids++
		state.id = ids
		e.Log.Debug().Int("state", state.id).Int("depth", state.Depth()).Msg("executing state")

		m, fault, err := e.execute(z3ctx, state)
		report.Queries = z3ctx.Queries()
		if err != nil {
			return report, fmt.Errorf("program '%s', state %d: %w", e.Name, state.id, err)
		}
		for _, f := range m.forks {
			queue.push(f)
		}

		tc, err := m.testcase(e.Name)
		if err != nil {
			return report, fmt.Errorf("program '%s', state %d: %w", e.Name, state.id, err)
		}
		if fault != nil {
			tc.Error = fault.kind
			tc.Message = fault.msg
			report.Partial++
			e.Log.Info().Int("state", state.id).Str("error", fault.kind).Str("message", fault.msg).Msg("path aborted")
		} else {
			report.Completed++
			e.Log.Debug().Int("state", state.id).Bools("path", m.taken).Msg("path completed")
		}
		report.Tests = append(report.Tests, tc)
	}
	report.Queries = z3ctx.Queries()
	return report, nil
}

func (e *Executor) execute(ctx *Context, state *State) (m *Machine, fault *abort, err error) {
	m = newMachine(ctx, state)
	defer func() {
		if r := recover(); r != nil {
			switch r := r.(type) {
			case *abort:
				fault = r
			case *solverFailure:
				err = r.err
			default:
				err = fmt.Errorf("%v\n%s", r, debug.Stack())
			}
		}
	}()
	e.Program(m)
	return m, nil, nil
}
