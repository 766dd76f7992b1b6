package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

func TestDetectImageType_RewindsReader(t *testing.T) {
	content := append(append([]byte{}, pngHeader...), make([]byte, 1024)...)
	r := bytes.NewReader(content)

	contentType, err := DetectImageType(r)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDetectImageType_ShortFile(t *testing.T) {
	contentType, err := DetectImageType(bytes.NewReader([]byte("GIF89a")))
	require.NoError(t, err)
	assert.Equal(t, "image/gif", contentType)
}

func TestDetectImageType_RejectsNonImages(t *testing.T) {
	for _, content := range [][]byte{
		[]byte("<html><body>hi</body></html>"),
		[]byte("%PDF-1.7"),
		{},
	} {
		_, err := DetectImageType(bytes.NewReader(content))
		assert.ErrorIs(t, err, ErrUnsupportedImage, string(content))
	}
}

func TestMinioUpload_RejectsBeforeContactingStorage(t *testing.T) {
	// the endpoint is never dialled: every case fails validation first
	svc, err := NewMinioService("localhost:1", "key", "secret", false)
	require.NoError(t, err)
	ctx := context.Background()

	err = svc.UploadImage(ctx, "bookstore", "a.txt", bytes.NewReader([]byte("plain text")), 10, "")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	err = svc.UploadImage(ctx, "bookstore", "a.pdf", bytes.NewReader(nil), 10, "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	err = svc.UploadImage(ctx, "bookstore", "big.png", bytes.NewReader(pngHeader), MaxImageSize+1, "image/png")
	assert.Error(t, err)
}
