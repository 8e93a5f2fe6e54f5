package errors

import (
	"strings"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr bool
	}{
		{"empty", nil, false},
		{"headings", []byte("# A\n## B"), false},
		{"cjk", []byte("# 标题\n## 子标题"), false},
		{"too large", []byte(strings.Repeat("#", MaxDocumentSize+1)), true},
		{"invalid utf8", []byte{'#', ' ', 0xff, 0xfe}, true},
		{"null byte", []byte("# A\x00B"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocument() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateDocument() returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"typical", 800, 600, false},
		{"zero", 0, 0, false},
		{"max", MaxDimension, MaxDimension, false},
		{"negative", -1, 600, true},
		{"too wide", MaxDimension + 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("ValidateDimensions() returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidatePixels(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"typical", 1520, 1120, false},
		{"at limit", 8192, 8192, false},
		{"max side at scale 8", 16384 * 8, 16384 * 8, true},
		{"tall strip", 200, 5_000_000, true},
		{"negative", -1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePixels(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePixels(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("ValidatePixels() returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidateRoot(t *testing.T) {
	tests := []struct {
		name    string
		root, n int
		wantErr bool
	}{
		{"first", 0, 1, false},
		{"last", 2, 3, false},
		{"empty forest", 5, 0, false},
		{"negative", -1, 3, true},
		{"out of range", 3, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoot(tt.root, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoot(%d, %d) error = %v, wantErr %v", tt.root, tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRoot) {
				t.Errorf("ValidateRoot() returned wrong error code: %v", err)
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
		{"valid simple", "src/main.go", false},
		{"valid nested", "pkg/internal/util/helpers.go", false},
		{"valid filename only", "README.md", false},
		{"valid with dots", "v1.2.3/package.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
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

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidTheme,
		ErrCodeInvalidVizType,
		ErrCodeInvalidParser,
		ErrCodeInvalidRoot,
		ErrCodeInvalidDimensions,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
