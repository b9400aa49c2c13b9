package validator

import "testing"

func TestCleanEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "user@example.com", "user@example.com", false},
		{"uppercase and padding", "  User@Example.COM ", "user@example.com", false},
		{"plus tag", "user+quiz@example.com", "user+quiz@example.com", false},
		{"empty", "   ", "", true},
		{"no domain", "user@", "", true},
		{"no at sign", "example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanEmail(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("CleanEmail(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanEmail(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("CleanEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
