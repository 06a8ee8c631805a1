package diskerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestInsufficientSpace(t *testing.T) {
	t.Parallel()

	err := InsufficientSpace(1024*1024*1024, 5*1024*1024)
	if err.Kind != KindInsufficientSpace {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInsufficientSpace)
	}
	if err.Required != 1024*1024*1024 || err.Available != 5*1024*1024 {
		t.Errorf("Required/Available = %d/%d, want %d/%d", err.Required, err.Available, 1024*1024*1024, 5*1024*1024)
	}
	if got := err.Error(); got == "" {
		t.Error("Error() returned empty string")
	}
}

func TestPermissionDenied(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("EACCES")
	err := PermissionDenied("/mnt/readonly", cause)
	if err.Kind != KindPermissionDenied {
		t.Errorf("Kind = %v, want %v", err.Kind, KindPermissionDenied)
	}
	if err.Path != "/mnt/readonly" {
		t.Errorf("Path = %q, want %q", err.Path, "/mnt/readonly")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the wrapped cause")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	t.Run("matches a diskerr.Error", func(t *testing.T) {
		err := Configuration("bad block size")
		kind, ok := KindOf(err)
		if !ok || kind != KindConfiguration {
			t.Errorf("KindOf = %v, %v; want %v, true", kind, ok, KindConfiguration)
		}
	})

	t.Run("false for an unrelated error", func(t *testing.T) {
		_, ok := KindOf(fmt.Errorf("plain error"))
		if ok {
			t.Error("KindOf should be false for a non-diskerr error")
		}
	})

	t.Run("unwraps through fmt.Errorf wrapping", func(t *testing.T) {
		inner := IO("sequential_read", "short read", fmt.Errorf("EOF"))
		wrapped := fmt.Errorf("running workload: %w", inner)
		kind, ok := KindOf(wrapped)
		if !ok || kind != KindIO {
			t.Errorf("KindOf(wrapped) = %v, %v; want %v, true", kind, ok, KindIO)
		}
	})
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	a := IO("sequential_write", "write failed", nil)
	b := IO("random_read", "read failed", nil)
	if !errors.Is(a, b) {
		t.Error("two diskerr.Errors with the same Kind should satisfy errors.Is")
	}

	c := Configuration("bad duration")
	if errors.Is(a, c) {
		t.Error("diskerr.Errors with different Kinds should not satisfy errors.Is")
	}
}
