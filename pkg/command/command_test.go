package command

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not in PATH")
	}
}

func TestExecRunner_Success(t *testing.T) {
	skipWithoutShell(t)

	res, err := NewExecRunner().Run(context.Background(), t.TempDir(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success() {
		t.Fatalf("expected success, got exit code %d", res.ExitCode)
	}
	if res.Output() != "hello" {
		t.Errorf("expected output 'hello', got %q", res.Output())
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	skipWithoutShell(t)

	res, err := NewExecRunner().Run(context.Background(), "", "sh", "-c", "echo broken >&2; exit 3")
	if err != nil {
		t.Fatalf("non-zero exit should not be an error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", res.ExitCode)
	}
	if res.Success() {
		t.Error("expected failure")
	}
	if !strings.Contains(res.Output(), "broken") {
		t.Errorf("expected stderr in output, got %q", res.Output())
	}
}

func TestExecRunner_WorkingDirectory(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	res, err := NewExecRunner().Run(context.Background(), dir, "sh", "-c", "pwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(res.Output(), filepath.Base(dir)) {
		t.Errorf("expected command to run in %s, got %q", dir, res.Output())
	}
}

func TestExecRunner_CanceledWithChildHoldingOutput(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// sleep inherits stdout and outlives the killed shell
	runner := &ExecRunner{WaitDelay: 100 * time.Millisecond}
	start := time.Now()
	_, err := runner.Run(ctx, "", "sh", "-c", "sleep 10; echo done")
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed > 3*time.Second {
		t.Errorf("expected prompt return after cancellation, took %s", elapsed)
	}
}

func TestNewExecRunner_WaitDelay(t *testing.T) {
	if got := NewExecRunner().WaitDelay; got != DefaultWaitDelay {
		t.Errorf("expected %s, got %s", DefaultWaitDelay, got)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), "", "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestResult_Output(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{"nil", nil, ""},
		{"stdout only", &Result{Stdout: "out\n"}, "out"},
		{"stderr only", &Result{Stderr: " err "}, "err"},
		{"both", &Result{Stdout: "out", Stderr: "err"}, "out\nerr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Output(); got != tt.want {
				t.Errorf("Output() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLine(t *testing.T) {
	if got := Line("oc", "apply", "-f", "x.yaml"); got != "oc apply -f x.yaml" {
		t.Errorf("unexpected line: %q", got)
	}
}
