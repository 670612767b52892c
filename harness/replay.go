package harness

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"slava0135/arraysum/array"
	"slava0135/arraysum/ktest"
)

var ErrMismatch = errors.New("replay does not match test case")

type Outcome struct {
	Result  int64
	Error   string
	Message string
}

func (o Outcome) String() string {
	if o.Error != "" {
		return fmt.Sprintf("%s fault: %s", o.Error, o.Message)
	}
	return fmt.Sprintf("returned %d", o.Result)
}

// Replay runs the real function on the inputs of tc. Faults the program can
// raise come back in the outcome, anything else is an error.
func Replay(p Program, tc ktest.Test) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out.Error, out.Message = classify(r)
			if out.Error == "" {
				err = fmt.Errorf("program '%s' panicked: %v", p.Name, r)
			}
		}
	}()
	res, err := p.Call(tc)
	if err != nil {
		return out, err
	}
	out.Result = res
	return out, nil
}

// Verify replays tc and checks the outcome is the one recorded.
func Verify(p Program, tc ktest.Test) (Outcome, error) {
	out, err := Replay(p, tc)
	if err != nil {
		return out, err
	}
	if out.Error != tc.Error || out.Message != tc.Message {
		return out, fmt.Errorf("%w: got '%s', recorded '%s' (%s)", ErrMismatch, out, tc.Error, tc.Message)
	}
	if !tc.Failed() && tc.Result != nil && out.Result != *tc.Result {
		return out, fmt.Errorf("%w: got %d, recorded %d", ErrMismatch, out.Result, *tc.Result)
	}
	return out, nil
}

func classify(r any) (kind string, msg string) {
	err, ok := r.(error)
	if !ok {
		return "", ""
	}
	if errors.Is(err, array.ErrOverflow) {
		return ktest.ErrOverflow, err.Error()
	}
	var rerr runtime.Error
	if !errors.As(err, &rerr) {
		return "", ""
	}
	msg = strings.TrimPrefix(rerr.Error(), "runtime error: ")
	switch {
	case strings.HasPrefix(msg, "index out of range"):
		return ktest.ErrPtr, msg
	case msg == "integer divide by zero":
		return ktest.ErrDiv, msg
	}
	return "", ""
}
