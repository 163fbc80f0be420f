//go:build linux

package clipboard

import (
	"errors"
	"testing"
)

func TestSelectPrefersWaylandUtility(t *testing.T) {
	resetForTest(t)
	getenv = func(key string) string {
		if key == "WAYLAND_DISPLAY" {
			return "wayland-0"
		}
		return ""
	}
	lookPath = func(prog string) (string, error) {
		if prog == "wl-copy" {
			return "/usr/bin/wl-copy", nil
		}
		return "", errors.New("not found")
	}

	b, err := getBackend()
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if cb, ok := b.(cmdBackend); !ok || cb.copyCmd != "wl-copy" {
		t.Errorf("expected wl-copy backend, got %#v", b)
	}
}

func TestSelectFallsBackToXclip(t *testing.T) {
	resetForTest(t)
	getenv = func(string) string { return "" }
	lookPath = func(prog string) (string, error) {
		if prog == "xclip" {
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}

	b, err := getBackend()
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if cb, ok := b.(cmdBackend); !ok || cb.copyCmd != "xclip" {
		t.Errorf("expected xclip backend, got %#v", b)
	}
}

func TestSelectNothingFound(t *testing.T) {
	resetForTest(t)
	getenv = func(string) string { return "" }
	lookPath = func(string) (string, error) {
		return "", errors.New("not found")
	}

	_, err := getBackend()
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
