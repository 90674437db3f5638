package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHearthError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *HearthError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestHearthError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestHearthError_ExitCode(t *testing.T) {
	tests := []struct {
		code int
		name string
	}{
		{ExitSuccess, "success"},
		{ExitGeneralError, "general"},
		{ExitProfileError, "profile error"},
		{ExitRenderError, "render error"},
		{ExitInstallError, "install error"},
		{ExitRebuildError, "rebuild error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "test")
			if got := err.ExitCode(); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}

func TestProfileNotFound(t *testing.T) {
	err := ProfileNotFound("livingroom")

	if err.Code != ExitProfileError {
		t.Errorf("Code = %d, want %d", err.Code, ExitProfileError)
	}

	if err.Message != "profile not found: livingroom" {
		t.Errorf("Message = %q, want %q", err.Message, "profile not found: livingroom")
	}
}

func TestProfileError(t *testing.T) {
	cause := fmt.Errorf("toml parse error")
	err := ProfileError("invalid profile", cause)

	if err.Code != ExitProfileError {
		t.Errorf("Code = %d, want %d", err.Code, ExitProfileError)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestRenderError(t *testing.T) {
	cause := fmt.Errorf("template execute error")
	err := RenderError(cause)

	if err.Code != ExitRenderError {
		t.Errorf("Code = %d, want %d", err.Code, ExitRenderError)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestInstallError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := InstallError("write", cause)

	if err.Code != ExitInstallError {
		t.Errorf("Code = %d, want %d", err.Code, ExitInstallError)
	}

	if err.Message != "install write failed" {
		t.Errorf("Message = %q, want %q", err.Message, "install write failed")
	}
}

func TestRebuildError(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := RebuildError("switch failed", cause)

	if err.Code != ExitRebuildError {
		t.Errorf("Code = %d, want %d", err.Code, ExitRebuildError)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "hearth error",
			err:  New(ExitProfileError, "profile"),
			want: ExitProfileError,
		},
		{
			name: "wrapped hearth error",
			err:  fmt.Errorf("outer: %w", New(ExitInstallError, "install")),
			want: ExitInstallError,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("plain"),
			want: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", InstallError("mkdir", fmt.Errorf("read-only file system")))

	var hearthErr *HearthError
	if !errors.As(err, &hearthErr) {
		t.Fatal("errors.As should find HearthError in chain")
	}

	if hearthErr.Code != ExitInstallError {
		t.Errorf("Code = %d, want %d", hearthErr.Code, ExitInstallError)
	}
}
