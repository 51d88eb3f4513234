package reporting

import (
	"bytes"
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Archiver uploads exported workbooks to an S3 bucket so mission reports
// survive the laptop they were generated on.
type Archiver struct {
	client *s3.Client
	bucket string
}

// NewArchiver builds an Archiver against the given bucket and region using
// ambient AWS credentials.
func NewArchiver(ctx context.Context, bucket, region string) (*Archiver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if region == "" {
		region = cfg.Region
	}

	client := s3.New(s3.Options{
		Region:       region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		BaseEndpoint: cfg.BaseEndpoint,
		UsePathStyle: true,
	})

	return &Archiver{client: client, bucket: bucket}, nil
}

// Put uploads a workbook under reports/<key>.
func (a *Archiver) Put(ctx context.Context, key string, data []byte) error {
	fullKey := "reports/" + key
	contentType := workbookContentType
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &fullKey,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", a.bucket, fullKey, err)
	}
	return nil
}
