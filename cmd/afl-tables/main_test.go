package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"testing"
)

func TestIsBrokenPipe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"raw", syscall.EPIPE, true},
		{"wrapped", fmt.Errorf("writing output: %w", &os.PathError{Op: "write", Path: "/dev/stdout", Err: syscall.EPIPE}), true},
		{"other", errors.New("boom"), false},
		{"reset", syscall.ECONNRESET, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBrokenPipe(tt.err); got != tt.want {
				t.Errorf("isBrokenPipe(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
