// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package conformance

import (
	"fmt"

	"github.com/gogpu/glctx"
)

// Opener creates the platform a suite runs on. The returned function
// releases it.
type Opener func(Suite) (glctx.Platform, func(), error)

// RunSuite opens a platform and a Context for s and runs the selected
// built-in cases on it. A suite that cannot start reports one failure named
// after the suite. Options are applied after the suite's own.
func (r *Runner) RunSuite(s Suite, open Opener, opts ...glctx.Option) *Report {
	fmt.Fprintf(r.out, "\n------ Context: %s ------\n", s.Name)

	p, release, err := open(s)
	if err != nil {
		return startFailure(s, err)
	}
	defer release()

	o := []glctx.Option{glctx.WithMinVersion(s.Major, s.Minor)}
	if s.Backend != "" {
		o = append(o, glctx.WithBackend(s.Backend))
	}
	ctx, err := glctx.New(p, append(o, opts...)...)
	if err != nil {
		return startFailure(s, err)
	}
	defer ctx.Close()

	// Present one frame so the window is mapped before reading pixels.
	ctx.Update()
	return r.Run(s.Name, &Env{Ctx: ctx, Width: s.Width, Height: s.Height}, Select(Cases(), s.Tests))
}

// RunConfig runs every suite of cfg and reports whether all of them passed.
func (r *Runner) RunConfig(cfg *Config, open Opener, opts ...glctx.Option) ([]*Report, bool) {
	reports := make([]*Report, 0, len(cfg.Suites))
	ok := true
	for _, s := range cfg.Suites {
		rep := r.RunSuite(s, open, opts...)
		r.PrintFailures(rep)
		ok = ok && !rep.Failed()
		reports = append(reports, rep)
	}
	return reports, ok
}

func startFailure(s Suite, err error) *Report {
	glctx.Logger().Warn("conformance: suite did not start", "suite", s.Name, "err", err)
	return &Report{Suite: s.Name, Total: 1, Failures: []Failure{{Name: s.Name, Reason: err.Error()}}}
}
