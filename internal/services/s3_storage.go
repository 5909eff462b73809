package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type s3StorageService struct {
	client    *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

// NewS3StorageService stores uploads in an S3-compatible bucket. A custom
// endpoint (R2, MinIO) switches the client to path-style addressing.
func NewS3StorageService(ctx context.Context, opts S3Options) (StorageService, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the s3 storage backend")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3StorageService{
		client:    client,
		bucket:    opts.Bucket,
		endpoint:  strings.TrimRight(opts.Endpoint, "/"),
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}, nil
}

func (s *s3StorageService) Init(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *s3StorageService) SaveFile(ctx context.Context, file *multipart.FileHeader, folder string, allowedExts []string) (string, error) {
	key, err := newObjectName(file.Filename, folder, allowedExts)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
	}
	if contentType := file.Header.Get("Content-Type"); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: failed to upload object: %v", ErrStorage, err)
	}

	return key, nil
}

// LocalPath downloads the object to a temp file that cleanup removes.
func (s *s3StorageService) LocalPath(ctx context.Context, name string) (string, func(), error) {
	noop := func() {}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return "", noop, fmt.Errorf("%w: %s: %v", ErrFileNotFound, name, err)
	}
	defer out.Body.Close()

	tmp, err := os.CreateTemp("", "upload-*"+path.Ext(name))
	if err != nil {
		return "", noop, fmt.Errorf("%w: failed to create temp file: %v", ErrStorage, err)
	}

	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️  Failed to remove temp file %s: %v", tmp.Name(), err)
		}
	}

	if _, err := io.Copy(tmp, out.Body); err != nil {
		tmp.Close()
		cleanup()
		return "", noop, fmt.Errorf("%w: failed to read object body: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return tmp.Name(), cleanup, nil
}

func (s *s3StorageService) URL(name string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + name
	}
	if s.endpoint != "" {
		return s.endpoint + "/" + s.bucket + "/" + name
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, name)
}

func (s *s3StorageService) DeleteFile(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
