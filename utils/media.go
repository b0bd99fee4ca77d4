package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const uploadDir = "uploads"

var mediaClient *s3.Client
var mediaBucket string
var cdnBaseURL string

// MediaConfig carries the S3-compatible storage settings. An empty Bucket
// leaves the store in local mode: files land under uploads/ and are served
// by the static route.
type MediaConfig struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	CDNBaseURL      string
}

// InitMediaStore configures the fighter-image store.
func InitMediaStore(mc MediaConfig) error {
	if mc.Bucket == "" {
		mediaClient = nil
		return EnsureUploadDir()
	}

	mediaBucket = mc.Bucket
	cdnBaseURL = mc.CDNBaseURL
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", mc.AccountID)
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			mc.AccessKeyID, mc.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return fmt.Errorf("failed to load media storage config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", mc.AccountID)
	mediaClient = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return nil
}

// StoreMedia persists an uploaded file under key and returns its public URL.
func StoreMedia(fileHeader *multipart.FileHeader, key string) (string, error) {
	if mediaClient == nil {
		return storeLocal(fileHeader, key)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	_, err = mediaClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(mediaBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	return fmt.Sprintf("%s/%s", cdnBaseURL, key), nil
}

// EnsureUploadDir creates the local uploads directory if it doesn't exist
func EnsureUploadDir() error {
	return os.MkdirAll(uploadDir, os.ModePerm)
}

func storeLocal(fileHeader *multipart.FileHeader, key string) (string, error) {
	destPath := filepath.Join(uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/" + uploadDir + "/" + key, nil
}
