package validation

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid with plus", "user+tag@example.com", false},
		{"empty", "", true},
		{"missing at", "userexample.com", true},
		{"missing tld", "user@example", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 256)))
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidateDescription(""))
	assert.NoError(t, ValidateDescription("a perfectly fine post"))
	assert.NoError(t, ValidateDescription(strings.Repeat("x", 255)))
	assert.Error(t, ValidateDescription(strings.Repeat("x", 256)))
}

func TestValidateCommentText(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidateCommentText(""))
	assert.NoError(t, ValidateCommentText(strings.Repeat("x", 255)))
	assert.Error(t, ValidateCommentText(strings.Repeat("x", 256)))
}

func TestValidateProfileFields(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateProfileFields("bio", "Berlin", "@me"))
	// Empty city stays allowed, short non-empty city does not.
	assert.NoError(t, ValidateProfileFields("", "", ""))
	assert.Error(t, ValidateProfileFields("", "B", ""))
	assert.Error(t, ValidateProfileFields(strings.Repeat("x", 256), "", ""))
	assert.Error(t, ValidateProfileFields("", "", strings.Repeat("x", 256)))
}

func TestValidateImageUpload(t *testing.T) {
	t.Parallel()

	header := func(name string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{Filename: name, Size: size}
	}

	tests := []struct {
		name    string
		fh      *multipart.FileHeader
		wantErr bool
	}{
		{"nil header", nil, true},
		{"png", header("a.png", 100), false},
		{"jpg", header("a.jpg", 100), false},
		{"jpeg uppercase", header("a.JPEG", 100), false},
		{"gif", header("a.gif", 100), false},
		{"pdf", header("a.pdf", 100), true},
		{"webp", header("a.webp", 100), true},
		{"no extension", header("noext", 100), true},
		{"at limit", header("a.png", MaxImageBytes), false},
		{"over limit", header("a.png", MaxImageBytes + 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageUpload(tt.fh)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateResetPassword(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateResetPassword("newpassword", "newpassword"))
	assert.Error(t, ValidateResetPassword("", ""))
	assert.Error(t, ValidateResetPassword("short", "short"))
	assert.Error(t, ValidateResetPassword("newpassword", "different"))
}
