package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MaxImageSize bounds every stored image.
const MaxImageSize = 5 * 1024 * 1024

// ErrUnsupportedImage is returned for uploads that are not JPEG, PNG, GIF or WebP.
var ErrUnsupportedImage = errors.New("only JPEG, PNG, GIF and WebP images are allowed")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DetectImageType sniffs the content type from the first 512 bytes of r and
// rewinds it. The client-supplied header is never trusted.
func DetectImageType(r io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)
	n, err := io.ReadFull(r, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	contentType := http.DetectContentType(buffer[:n])
	if !allowedImageTypes[contentType] {
		return "", ErrUnsupportedImage
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return contentType, nil
}

// MinioService stores uploaded product images, category illustrations and avatars.
type MinioService interface {
	UploadImage(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error
	DeleteImage(ctx context.Context, bucketName, objectName string) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	EnsureBucketExists(ctx context.Context, bucketName string) error
}

type minioClient struct {
	client *minio.Client
}

func NewMinioService(endpoint, accessKey, secretKey string, useSSL bool) (MinioService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioClient{client: client}, nil
}

// UploadImage refuses anything that is not an allowed image. A seekable reader
// without a content type is sniffed first.
func (m *minioClient) UploadImage(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	if objectSize > MaxImageSize {
		return fmt.Errorf("image of %d bytes: exceeds %d", objectSize, MaxImageSize)
	}
	if rs, ok := reader.(io.ReadSeeker); ok && contentType == "" {
		detected, err := DetectImageType(rs)
		if err != nil {
			return err
		}
		contentType = detected
	}
	if !allowedImageTypes[contentType] {
		return ErrUnsupportedImage
	}
	_, err := m.client.PutObject(ctx, bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (m *minioClient) DeleteImage(ctx context.Context, bucketName, objectName string) error {
	return m.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
}

func (m *minioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return m.client.BucketExists(ctx, bucketName)
}

func (m *minioClient) EnsureBucketExists(ctx context.Context, bucketName string) error {
	found, err := m.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	}
	return nil
}
