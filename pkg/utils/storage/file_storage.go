package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/mathieustrosberg/restaurant-app/pkg/utils/image"
)

// R2Storage stores processed uploads in a Cloudflare R2 bucket through the
// S3 API.
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

func NewR2Storage(accountID, accessKey, secretKey, bucket, publicURL string) (*R2Storage, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &R2Storage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// Upload validates and re-encodes the file, then writes it under uploads/
// with a slugged name and a uuid suffix, and returns the public URL.
func (s *R2Storage) Upload(file *multipart.FileHeader) (UploadResult, error) {
	buf, contentType, err := image.Process(file)
	if err != nil {
		return UploadResult{}, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	base := slug.Make(strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)))
	if base == "" {
		base = "image"
	}
	filename := fmt.Sprintf("%s-%s%s", base, uuid.New().String(), ext)
	key := fmt.Sprintf("uploads/%s", filename)

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("could not upload to bucket: %w", err)
	}

	return UploadResult{
		Filename: filename,
		URL:      fmt.Sprintf("%s/%s", s.publicURL, key),
	}, nil
}

// Delete removes a previously uploaded object, matched by its public URL.
func (s *R2Storage) Delete(imageURL string) error {
	key := strings.TrimPrefix(imageURL, s.publicURL+"/")

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
