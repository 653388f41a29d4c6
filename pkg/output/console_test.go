package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_Banner(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Banner(2, 9, "Apply Secret")

	out := buf.String()
	if !strings.Contains(out, "[2/9] Apply Secret") {
		t.Errorf("banner missing step label:\n%s", out)
	}
	if strings.Count(out, strings.Repeat("=", bannerWidth)) != 2 {
		t.Errorf("expected two rule lines:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no color codes for non-terminal writer:\n%q", out)
	}
}

func TestConsole_Tags(t *testing.T) {
	tests := []struct {
		name  string
		print func(c *Console)
		want  string
	}{
		{"success", func(c *Console) { c.Success("applied %s", "secret.yaml") }, "SUCCESS: applied secret.yaml\n"},
		{"error", func(c *Console) { c.Error("step %q failed", "build") }, "ERROR: step \"build\" failed\n"},
		{"warning", func(c *Console) { c.Warning("no route host") }, "WARNING: no route host\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewConsole(&buf))
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestConsole_Detail(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Detail("")
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty detail, got %q", buf.String())
	}

	c.Detail("line one\nline two\n")
	if buf.String() != "    line one\n    line two\n" {
		t.Errorf("unexpected detail output: %q", buf.String())
	}
}
