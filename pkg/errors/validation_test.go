package errors

import "testing"

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single letter", "A", false},
		{"lowercase", "e", false},
		{"all", "All", false},
		{"random", "Random", false},
		{"unknown but well formed", "Q", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 40)), true},
		{"slash", "A/B", true},
		{"backslash", `A\B`, true},
		{"traversal", "..", true},
		{"space", "A B", true},
		{"newline", "A\n", true},
		{"null byte", "A\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSymbol(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSymbol(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateSymbol(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateSuffix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"dash", "-v2", false},
		{"underscore", "_large", false},

		{"slash", "/x", true},
		{"space", " x", true},
		{"traversal", "..x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSuffix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSuffix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out", false},
		{"nested", "out/stimuli", false},
		{"absolute", "/tmp/out", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "out\x00", true},
		{"control char", "out\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
