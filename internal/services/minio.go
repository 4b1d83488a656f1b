package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"velora_back_end/internal/config"
)

// Uploader pousse les images produit vers MinIO et renvoie une URL
// publique durable.
type Uploader struct {
	Client *minio.Client
	Cfg    config.MinioConfig
}

func NewUploader(client *minio.Client, cfg config.MinioConfig) *Uploader {
	return &Uploader{Client: client, Cfg: cfg}
}

func (u *Uploader) UploadFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if u == nil || u.Client == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Nom d'objet unique pour éviter l'écrasement entre deux uploads
	ext := filepath.Ext(file.Filename)
	objectName := fmt.Sprintf("products/%s%s", uuid.NewString(), ext)

	_, err = u.Client.PutObject(ctx, u.Cfg.Bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if u.Cfg.UseSSL {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, u.Cfg.Endpoint, u.Cfg.Bucket, objectName)
	return url, nil
}
