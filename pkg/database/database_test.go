package database

import "testing"

func TestShouldAutoMigrate(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug always migrates", "debug", false, true},
		{"debug with force", "debug", true, true},
		{"release skips by default", "release", false, false},
		{"release with force", "release", true, true},
		{"empty mode migrates", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldAutoMigrate(tt.mode, tt.force); got != tt.want {
				t.Errorf("shouldAutoMigrate(%q, %v) = %v, want %v", tt.mode, tt.force, got, tt.want)
			}
		})
	}
}
