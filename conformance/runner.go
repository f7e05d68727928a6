// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package conformance checks that a glctx.Context behaves the same on every
// backend.
//
// A suite opens one Context, then runs every case against it. Before each
// case the Context is Reset so no state leaks between cases; after a case
// returns, any pending driver diagnostics fail it.
package conformance

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/gogpu/glctx"
)

// ErrCheck is matched by every error returned from a failed check.
var ErrCheck = errors.New("conformance: check failed")

// Env is what a case runs against.
type Env struct {
	Ctx *glctx.Context
	// Width and Height are the window size the suite asked for.
	Width, Height int
}

// Case is a single conformance test.
type Case struct {
	Name string
	Run  func(*Env) error
}

// Failure is one failed case and why it failed.
type Failure struct {
	Name   string
	Reason string
}

// Report is the outcome of one suite.
type Report struct {
	Suite    string
	Total    int
	Failures []Failure
	Elapsed  time.Duration
}

// Passed returns the number of cases that passed.
func (r *Report) Passed() int { return r.Total - len(r.Failures) }

// Failed reports whether any case failed.
func (r *Report) Failed() bool { return len(r.Failures) > 0 }

// Runner runs cases and prints their outcome.
type Runner struct {
	out *termenv.Output
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithProfile forces a color profile. termenv.Ascii disables colors.
func WithProfile(p termenv.Profile) RunnerOption {
	return func(r *Runner) {
		r.out = termenv.NewOutput(r.out.Writer(), termenv.WithProfile(p))
	}
}

// NewRunner returns a Runner printing to w. Colors follow what w supports.
func NewRunner(w io.Writer, opts ...RunnerOption) *Runner {
	r := &Runner{out: termenv.NewOutput(w)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) ok() string {
	return r.out.String("ok").Foreground(termenv.ANSIBrightGreen).String()
}

func (r *Runner) failed() string {
	return r.out.String("FAILED").Foreground(termenv.ANSIRed).String()
}

// Run runs cases in order against env and prints one line per case followed
// by a summary.
func (r *Runner) Run(suite string, env *Env, cases []Case) *Report {
	rep := &Report{Suite: suite, Total: len(cases)}
	start := time.Now()

	fmt.Fprintf(r.out, "\nrunning %d tests\n", len(cases))
	for _, c := range cases {
		env.Ctx.Reset()
		err := runCase(c, env)
		if err == nil {
			if msgs := env.Ctx.PollErrors(); msgs != nil {
				err = &DiagnosticsError{Messages: msgs}
			}
		}
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{Name: c.Name, Reason: err.Error()})
			fmt.Fprintf(r.out, "test %s ... %s\n", c.Name, r.failed())
			glctx.Logger().Debug("conformance: case failed", "suite", suite, "case", c.Name, "err", err)
			continue
		}
		fmt.Fprintf(r.out, "test %s ... %s\n", c.Name, r.ok())
	}
	rep.Elapsed = time.Since(start)

	result := r.ok()
	if rep.Failed() {
		result = r.failed()
	}
	fmt.Fprintf(r.out, "\ntest result: %s. %d passed; %d failed; finished in %.2fs\n",
		result, rep.Passed(), len(rep.Failures), rep.Elapsed.Seconds())
	return rep
}

// PrintFailures writes the reason of every failed case.
func (r *Runner) PrintFailures(rep *Report) {
	if !rep.Failed() {
		return
	}
	fmt.Fprintln(r.out, "\nfailures:")
	for _, f := range rep.Failures {
		fmt.Fprintf(r.out, "\n---- %s ----\n%s\n", f.Name, f.Reason)
	}
}

// runCase runs c and turns a panic into an error.
func runCase(c Case, env *Env) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return c.Run(env)
}

// DiagnosticsError fails a case that left driver messages behind.
type DiagnosticsError struct {
	Messages []string
}

func (e *DiagnosticsError) Error() string {
	return "driver reported:\n" + strings.Join(e.Messages, "\n")
}

// check returns an ErrCheck error describing what was expected when ok is
// false.
func check(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCheck, fmt.Sprintf(format, args...))
}
