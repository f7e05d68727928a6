package native

import (
	"errors"
	"sort"

	"github.com/gogpu/gpucontext"
)

// Backend names.
const (
	BackendOpenGL = "opengl"
	BackendSoft   = "soft"
)

// ErrBackendNotAvailable is returned when a requested backend is not registered.
var ErrBackendNotAvailable = errors.New("native: backend not available")

// DeviceFactory creates a new, unloaded Device.
type DeviceFactory func() Device

// backends holds registered device factories. A hardware backend is
// preferred over the software one when both are linked in.
var backends = gpucontext.NewRegistry[Device](
	gpucontext.WithPriority(BackendOpenGL, BackendSoft),
)

// Register registers a device factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory DeviceFactory) {
	backends.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the sorted names of registered backends.
func Available() []string {
	names := backends.Available()
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return backends.Has(name)
}

// Open returns a new device from the named backend.
func Open(name string) (Device, error) {
	if !backends.Has(name) {
		return nil, ErrBackendNotAvailable
	}
	d := backends.Get(name)
	if d == nil {
		return nil, ErrBackendNotAvailable
	}
	return d, nil
}

// Best returns a new device from the highest-priority registered backend.
func Best() (Device, error) {
	d := backends.Best()
	if d == nil {
		return nil, ErrBackendNotAvailable
	}
	return d, nil
}
