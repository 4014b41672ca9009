package storage

import (
	"errors"
	"strings"
	"testing"
)

func TestReadLimited(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		wantErr error
	}{
		{name: "under limit", input: "abc", limit: 4},
		{name: "at limit", input: "abcd", limit: 4},
		{name: "over limit", input: "abcde", limit: 4, wantErr: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readLimited(strings.NewReader(tt.input), tt.limit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("readLimited() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && string(got) != tt.input {
				t.Errorf("readLimited() = %q, want %q", got, tt.input)
			}
		})
	}
}
