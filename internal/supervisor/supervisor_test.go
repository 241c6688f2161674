package supervisor

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Status{State: StateRunning}, "running"},
		{Status{State: StateExited, Code: 0}, "exit status 0"},
		{Status{State: StateExited, Code: 3}, "exit status 3"},
		{Status{State: StateExited, Code: -1, Signal: "killed"}, "signal: killed"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Fatalf("%+v.String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSpawnEmptyPath(t *testing.T) {
	_, err := Spawn("")
	var lerr *LaunchError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LaunchError, got %v", err)
	}
}

func TestSpawnMissingExecutable(t *testing.T) {
	_, err := Spawn("does_not_exist.exe")
	var lerr *LaunchError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LaunchError, got %T: %v", err, err)
	}
	if lerr.Path != "does_not_exist.exe" {
		t.Fatalf("expected path in error, got %q", lerr.Path)
	}
	if lerr.Err == nil {
		t.Fatalf("expected underlying OS error")
	}
}

func TestErrorsUnwrap(t *testing.T) {
	base := fmt.Errorf("boom")
	if !errors.Is(&LaunchError{Path: "x", Err: base}, base) {
		t.Fatalf("LaunchError does not unwrap")
	}
	if !errors.Is(&StatusError{PID: 1, Err: base}, base) {
		t.Fatalf("StatusError does not unwrap")
	}
}
