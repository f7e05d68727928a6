package native

import (
	"errors"
	"testing"
)

// namedDevice satisfies Device for registry tests; only Name is called.
type namedDevice struct {
	Device
	name string
}

func (d namedDevice) Name() string { return d.name }

func TestRegistryPriority(t *testing.T) {
	t.Cleanup(func() {
		Unregister("test-low")
		Unregister(BackendOpenGL)
		Unregister(BackendSoft)
	})

	Register(BackendSoft, func() Device { return namedDevice{name: BackendSoft} })
	d, err := Best()
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if d.Name() != BackendSoft {
		t.Errorf("Best().Name() = %q, want %q", d.Name(), BackendSoft)
	}

	Register(BackendOpenGL, func() Device { return namedDevice{name: BackendOpenGL} })
	d, err = Best()
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if d.Name() != BackendOpenGL {
		t.Errorf("Best().Name() = %q, want %q", d.Name(), BackendOpenGL)
	}
}

func TestRegistryOpen(t *testing.T) {
	t.Cleanup(func() { Unregister("test") })

	if _, err := Open("test"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(unregistered) error = %v, want %v", err, ErrBackendNotAvailable)
	}

	Register("test", func() Device { return namedDevice{name: "test"} })
	if !IsRegistered("test") {
		t.Fatal("IsRegistered() = false after Register")
	}
	d, err := Open("test")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if d.Name() != "test" {
		t.Errorf("Name() = %q, want %q", d.Name(), "test")
	}

	found := false
	for _, name := range Available() {
		if name == "test" {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, missing %q", Available(), "test")
	}
}

func TestDebugTypeActionable(t *testing.T) {
	tests := []struct {
		typ  DebugType
		want bool
	}{
		{TypeError, true},
		{TypeDeprecatedBehavior, true},
		{TypeUndefinedBehavior, true},
		{TypePortability, true},
		{TypePerformance, true},
		{TypeMarker, false},
		{TypePushGroup, false},
		{TypePopGroup, false},
		{TypeOther, false},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.Actionable(); got != tt.want {
				t.Errorf("Actionable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPixelSizes(t *testing.T) {
	if got := PixelRGB.Channels() * PixelFloat32.Size(); got != 12 {
		t.Errorf("RGB float32 pixel = %d bytes, want 12", got)
	}
	if got := PixelRGBA.Channels() * PixelUint8.Size(); got != 4 {
		t.Errorf("RGBA uint8 pixel = %d bytes, want 4", got)
	}
}
