package main

import (
	"bytes"
	"errors"
	"testing"
)

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "two commands", args: []string{"up", "down"}},
		{name: "unknown command", args: []string{"redo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, &out)
			if !errors.Is(err, errUsage) {
				t.Fatalf("run(%v) = %v, want usage error", tt.args, err)
			}
			if out.Len() != 0 {
				t.Errorf("unexpected output %q", out.String())
			}
		})
	}
}

func TestRun_BadDSNReturnsError(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://nobody@127.0.0.1:1/none?connect_timeout=1&sslmode=disable")

	var out bytes.Buffer
	err := run([]string{"status"}, &out)
	if err == nil {
		t.Fatal("expected an error for an unreachable database")
	}
	if errors.Is(err, errUsage) {
		t.Fatalf("unexpected usage error: %v", err)
	}
}
