package supabase_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"portfolio-backend/internal/errs"
	"portfolio-backend/internal/supabase"
)

func TestValidateImage_AcceptedTypes(t *testing.T) {
	data := []byte("fake image data")

	for _, contentType := range []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"} {
		assert.NoError(t, supabase.ValidateImage(data, contentType), contentType)
	}
}

func TestValidateImage_RejectedType(t *testing.T) {
	err := supabase.ValidateImage([]byte("not an image"), "application/pdf")

	assert.Error(t, err)
	var validation *errs.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestValidateImage_TooLarge(t *testing.T) {
	data := bytes.Repeat([]byte("a"), supabase.MaxUploadSize+1)

	err := supabase.ValidateImage(data, "image/jpeg")

	assert.Error(t, err)
	var validation *errs.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "5MB")
}

func TestValidateImage_AtLimit(t *testing.T) {
	data := bytes.Repeat([]byte("a"), supabase.MaxUploadSize)

	assert.NoError(t, supabase.ValidateImage(data, "image/png"))
}

func TestObjectPath_KeepsExtension(t *testing.T) {
	path := supabase.ObjectPath("projects", "Screenshot 2024.PNG")

	assert.True(t, strings.HasPrefix(path, "projects/"))
	assert.True(t, strings.HasSuffix(path, ".png"))
}

func TestObjectPath_DefaultsExtension(t *testing.T) {
	path := supabase.ObjectPath("journey", "no-extension")

	assert.True(t, strings.HasPrefix(path, "journey/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))
}

func TestObjectPath_Unique(t *testing.T) {
	a := supabase.ObjectPath("projects", "photo.jpg")
	b := supabase.ObjectPath("projects", "photo.jpg")

	assert.NotEqual(t, a, b)
}

func TestPathFromURL_RoundTrip(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co", "service-key", "public")
	assert.NoError(t, err)

	url := client.PublicURL("projects/123-abcd1234.jpg")
	path, ok := client.PathFromURL(url)

	assert.True(t, ok)
	assert.Equal(t, "projects/123-abcd1234.jpg", path)
}

func TestPathFromURL_ForeignURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co", "service-key", "public")
	assert.NoError(t, err)

	_, ok := client.PathFromURL("https://other.example.com/image.jpg")

	assert.False(t, ok)
}
