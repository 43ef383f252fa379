package errors

import (
	"strings"
	"testing"
)

func TestValidateMaterialName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Wire", false},
		{"valid with dot", "Wire.001", false},
		{"valid with spaces", "Glass Dirty", false},
		{"valid unicode", "Stoff-Grün", false},

		{"empty", "", true},
		{"too long", strings.Repeat("m", 64), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMaterialName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMaterialName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateMaterialName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateContainerPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "scenes/shot.json", false},
		{"absolute", "/tmp/library.json", false},
		{"parent dir", "../assets/lib.json", false},

		{"empty", "", true},
		{"trailing slash", "scenes/", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContainerPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateContainerPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateContainerPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidPath,
		ErrCodeInvalidName,
		ErrCodeInvalidContainer,
		ErrCodeNameCollision,
		ErrCodeMaterialNotFound,
		ErrCodeFileNotFound,
		ErrCodeSnapshotNotFound,
		ErrCodeUnknownNodeType,
		ErrCodeSocketNameMismatch,
		ErrCodeDanglingEndpoint,
		ErrCodePersist,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
