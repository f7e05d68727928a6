package headless

import "testing"

func TestSurfaceSize(t *testing.T) {
	s := New(640, 480)
	w, h := s.Size()
	if w != 640 || h != 480 {
		t.Errorf("Size() = %d, %d, want 640, 480", w, h)
	}
	if got := s.ScaleFactor(); got != 1 {
		t.Errorf("ScaleFactor() = %v, want 1", got)
	}
	if got := WithScale(10, 10, 2).ScaleFactor(); got != 2 {
		t.Errorf("WithScale ScaleFactor() = %v, want 2", got)
	}
}

func TestSurfaceCounters(t *testing.T) {
	s := New(1, 1)
	s.SwapBuffers()
	s.SwapBuffers()
	s.RequestRedraw()
	if s.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", s.Frames())
	}
	if s.Redraws() != 1 {
		t.Errorf("Redraws() = %d, want 1", s.Redraws())
	}
	if p := s.ProcAddress("glClear"); p != nil {
		t.Errorf("ProcAddress() = %v, want nil", p)
	}
}
