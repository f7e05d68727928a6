package glctx

import "github.com/gogpu/glctx/native"

// Option configures a Context during creation.
//
// Example:
//
//	// Best registered backend, default limits
//	ctx, err := glctx.New(window)
//
//	// Explicit device and a larger diagnostics log
//	ctx, err := glctx.New(window,
//	    glctx.WithDevice(soft.New()),
//	    glctx.WithDiagnosticsCapacity(256),
//	)
type Option func(*options)

type options struct {
	device       native.Device
	backend      string
	poolCapacity int
	diagCapacity int
	minMajor     int
	minMinor     int
}

func defaultOptions() options {
	return options{
		poolCapacity: 10,
		diagCapacity: 64,
		minMajor:     4,
		minMinor:     3,
	}
}

// WithDevice uses d instead of a device from the backend registry.
// The device must not have been loaded yet.
func WithDevice(d native.Device) Option {
	return func(o *options) {
		o.device = d
	}
}

// WithBackend selects a registered backend by name (see native.Available).
// Ignored when WithDevice is also given.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithPoolCapacity reserves room for n resources in each pool.
func WithPoolCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.poolCapacity = n
		}
	}
}

// WithDiagnosticsCapacity sets how many driver messages are kept between
// two PollErrors calls. Further messages are dropped.
func WithDiagnosticsCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.diagCapacity = n
		}
	}
}

// WithMinVersion sets the minimum device version New accepts.
// The default is 4.3, the first OpenGL core version with debug output and
// separate vertex attribute formats.
func WithMinVersion(major, minor int) Option {
	return func(o *options) {
		o.minMajor = major
		o.minMinor = minor
	}
}
