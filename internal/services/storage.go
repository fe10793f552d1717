package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// MaxUploadSize caps image uploads at 5 MB.
const MaxUploadSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// Uploader stores an uploaded image and returns the URL to serve it from.
type Uploader interface {
	Upload(ctx context.Context, c *gin.Context, file *multipart.FileHeader) (string, error)
}

func validateImage(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxUploadSize {
		return "", fmt.Errorf("file too large (max %d bytes)", MaxUploadSize)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("only image files are allowed (jpeg, jpg, png, webp)")
	}
	return ext, nil
}

// DiskUploader writes files under the uploads directory served at /uploads.
type DiskUploader struct {
	dir string
}

func NewDiskUploader(dir string) *DiskUploader {
	return &DiskUploader{dir: dir}
}

func (u *DiskUploader) Upload(_ context.Context, c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext, err := validateImage(file)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(path.Base(file.Filename), filepath.Ext(file.Filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(u.dir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// MinioUploader stores files in an object storage bucket instead of the
// local disk, used when MINIO_ENDPOINT is configured.
type MinioUploader struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

func NewMinioUploader(client *minio.Client, bucket, endpoint string, useSSL bool) *MinioUploader {
	return &MinioUploader{client: client, bucket: bucket, endpoint: endpoint, useSSL: useSSL}
}

func (u *MinioUploader) Upload(ctx context.Context, _ *gin.Context, file *multipart.FileHeader) (string, error) {
	ext, err := validateImage(file)
	if err != nil {
		return "", err
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := uuid.New().String() + ext
	_, err = u.client.PutObject(ctx, u.bucket, name, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if u.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.endpoint, u.bucket, name), nil
}
