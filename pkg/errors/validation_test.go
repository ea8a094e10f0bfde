package errors

import "testing"

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid simple", "alice", false},
		{"valid with separator", "user:42", false},
		{"empty", "", true},
		{"control character", "ali\x00ce", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUserID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScenarioPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative", "maps/dungeon.json", false},
		{"valid absolute", "/tmp/dungeon.json", false},
		{"empty", "", true},
		{"traversal", "../secrets.json", true},
		{"nested traversal", "maps/../../etc/passwd", true},
		{"null byte", "maps/\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenarioPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScenarioPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
