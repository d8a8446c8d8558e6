// Package engine evaluates job scripts. Scripts are zygomys Lisp run in a
// sandbox with a small set of builtins that describe the geometry and
// settings of a conversion job.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chazu/voxblock/pkg/job"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	// Timeout overrides EvalTimeout when positive.
	Timeout time.Duration

	tickets tickets
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a job script and returns the job it describes, starting
// from job.Default.
//
// Return semantics:
//   - On success: returns job + nil errors + nil error
//   - On parse/eval failure: returns nil job + eval errors + nil error
//   - On fatal failure: returns nil + nil + error (ErrTimeout,
//     ErrSuperseded or a recovered panic)
func (e *Engine) Evaluate(source string) (*job.Job, []EvalError, error) {
	ticket := e.tickets.issue()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = EvalTimeout
	}

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		j, evalErrs, err := e.evaluate(source)
		ch <- evalResult{job: j, errors: evalErrs, err: err}
	}()

	return e.tickets.await(ticket, ch, timeout)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*job.Job, []EvalError, error) {
	j := job.Default()

	// Empty source is a valid program that describes an empty job.
	if strings.TrimSpace(source) == "" {
		return j, nil, nil
	}

	// Sandbox mode prevents scripts from reaching the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, j)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return j, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		// Drop only the location prefix; zygomys may put the builtin's
		// message before it or on following lines.
		if m := re.FindStringSubmatchIndex(msg); m != nil {
			line, _ := strconv.Atoi(msg[m[2]:m[3]])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(msg[:m[0]] + msg[m[4]:]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
