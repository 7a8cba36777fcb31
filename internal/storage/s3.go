package storage

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/registreehq/registree-api/internal/config"
)

// S3Uploader pushes locally staged upload files into an S3 bucket.
type S3Uploader struct {
	client *s3.Client
	bucket string
	prefix string
	region string
}

func NewS3Uploader(ctx context.Context, cfg *config.Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AWSBucketName,
		prefix: cfg.AWSKeyPrefix,
		region: cfg.AWSRegion,
	}, nil
}

// Upload stores the file at filePath in the bucket and returns its public
// URL. When deleteAfter is set the local file is removed once the upload
// succeeds.
func (u *S3Uploader) Upload(ctx context.Context, filePath string, deleteAfter bool) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	key := path.Join(u.prefix, path.Base(filePath))
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file,
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	if deleteAfter {
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove %s after upload: %w", filePath, err)
		}
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
