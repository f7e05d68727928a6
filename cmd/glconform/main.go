// Command glconform runs the glctx conformance suites.
//
// Without -config it runs every case once on the backend chosen by -backend.
// A config file lists several suites:
//
//	glconform -config suites.toml
//	glconform -backend soft -tests render_target::,draw::
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/gogpu/glctx"
	"github.com/gogpu/glctx/conformance"
	"github.com/gogpu/glctx/native"
	_ "github.com/gogpu/glctx/native/opengl"
	_ "github.com/gogpu/glctx/native/soft"
	"github.com/gogpu/glctx/platform/desktop"
	"github.com/gogpu/glctx/platform/headless"
)

func init() {
	// GLFW and OpenGL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		config  = flag.String("config", "", "TOML file describing the suites to run")
		backend = flag.String("backend", "", "backend for every suite: opengl or soft")
		width   = flag.Int("width", 0, "window width for every suite")
		height  = flag.Int("height", 0, "window height for every suite")
		tests   = flag.String("tests", "", "comma separated case name prefixes")
		verbose = flag.Bool("v", false, "log driver messages and resource lifecycle")
	)
	flag.Parse()

	if *verbose {
		glctx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := conformance.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = conformance.LoadConfig(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	for i := range cfg.Suites {
		s := &cfg.Suites[i]
		if *backend != "" {
			s.Backend = *backend
		}
		if *width > 0 {
			s.Width = *width
		}
		if *height > 0 {
			s.Height = *height
		}
		if *tests != "" {
			s.Tests = strings.Split(*tests, ",")
		}
	}

	r := conformance.NewRunner(os.Stdout)
	if _, ok := r.RunConfig(cfg, open); !ok {
		log.Println("one or more tests failed")
		os.Exit(1)
	}
}

// open creates a headless surface for the soft backend and a GLFW window
// otherwise.
func open(s conformance.Suite) (glctx.Platform, func(), error) {
	if s.Backend == native.BackendSoft {
		return headless.New(s.Width, s.Height), func() {}, nil
	}
	w, err := desktop.NewWindow(
		desktop.WithTitle("glconform: "+s.Name),
		desktop.WithSize(s.Width, s.Height),
		desktop.WithResizable(false),
	)
	if err != nil {
		return nil, nil, err
	}
	w.PollEvents()
	return w, w.Destroy, nil
}
