package util

import "testing"

func TestPathID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want uint
	}{
		{"plain id", "42", 42},
		{"zero", "0", 0},
		{"empty", "", 0},
		{"not a number", "abc", 0},
		{"negative", "-1", 0},
		{"trailing junk", "7x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathID(tt.raw); got != tt.want {
				t.Errorf("PathID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
