package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Document binaries live in an S3-compatible bucket (AWS S3 or any
// compatible endpoint via STORAGE_ENDPOINT). Only metadata is kept in MySQL.

func getStorageConfig() (aws.Config, error) {
	accessKey := os.Getenv("STORAGE_ACCESS_KEY_ID")
	secretKey := os.Getenv("STORAGE_SECRET_ACCESS_KEY")
	region := os.Getenv("STORAGE_REGION")
	if region == "" {
		region = "auto"
	}

	if accessKey == "" || secretKey == "" {
		return aws.Config{}, fmt.Errorf("STORAGE_ACCESS_KEY_ID or STORAGE_SECRET_ACCESS_KEY is not set")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load storage config: %w", err)
	}

	return cfg, nil
}

func getStorageClient() (*s3.Client, error) {
	cfg, err := getStorageConfig()
	if err != nil {
		return nil, err
	}

	endpoint := os.Getenv("STORAGE_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return client, nil
}

func getStorageBucket() (string, error) {
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		return "", fmt.Errorf("STORAGE_BUCKET is not set")
	}
	return bucket, nil
}

// UploadObject stores a document binary under the given object key.
func UploadObject(objectKey string, file io.Reader) error {
	bucket, err := getStorageBucket()
	if err != nil {
		return err
	}

	client, err := getStorageClient()
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(path.Ext(objectKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}

	return nil
}

// PresignObjectURL returns a presigned GET URL for downloading a document.
func PresignObjectURL(objectKey string, expirySeconds int64) (string, error) {
	bucket, err := getStorageBucket()
	if err != nil {
		return "", err
	}

	client, err := getStorageClient()
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(client)

	presigned, err := presigner.PresignGetObject(context.TODO(),
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(objectKey),
		},
		func(po *s3.PresignOptions) {
			po.Expires = time.Duration(expirySeconds) * time.Second
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign storage URL: %w", err)
	}

	return presigned.URL, nil
}

// DeleteObject removes a document binary from the bucket.
func DeleteObject(objectKey string) error {
	bucket, err := getStorageBucket()
	if err != nil {
		return err
	}

	client, err := getStorageClient()
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("storage delete failed: %w", err)
	}

	return nil
}
