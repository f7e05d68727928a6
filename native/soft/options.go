package soft

// Option configures a Device during creation.
//
// Example:
//
//	// 320x240 framebuffer reporting an OpenGL 3.3 class device
//	d := soft.New(soft.WithSize(320, 240), soft.WithVersion(3, 3))
type Option func(*options)

type options struct {
	width, height int
	major, minor  int
	missing       []string
	notifications bool
	compileCache  int
}

func defaultOptions() options {
	return options{
		width:         800,
		height:        600,
		major:         4,
		minor:         3,
		notifications: true,
		compileCache:  32,
	}
}

// WithSize sets the initial framebuffer size.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithVersion sets the API version the device reports after Load.
func WithVersion(major, minor int) Option {
	return func(o *options) {
		o.major = major
		o.minor = minor
	}
}

// WithMissingEntryPoints makes Load fail as if the named entry points could
// not be resolved.
func WithMissingEntryPoints(names ...string) Option {
	return func(o *options) {
		o.missing = append(o.missing, names...)
	}
}

// WithNotifications controls whether the device emits informational
// notifications (buffer placement messages) through the debug callback.
func WithNotifications(enabled bool) Option {
	return func(o *options) {
		o.notifications = enabled
	}
}

// WithCompileCache sets how many compiled WGSL sources the device remembers.
// Compiling a source it remembers skips parsing and validation. Zero
// disables the cache.
func WithCompileCache(entries int) Option {
	return func(o *options) {
		o.compileCache = entries
	}
}
