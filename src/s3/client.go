package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client the export uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client uploads export files to a single bucket.
type Client struct {
	client PutObjectAPI
	bucket string
}

func NewClient(cfg aws.Config, bucket string) *Client {
	return NewClientWithAPI(s3.NewFromConfig(cfg), bucket)
}

func NewClientWithAPI(api PutObjectAPI, bucket string) *Client {
	return &Client{client: api, bucket: bucket}
}

func (c *Client) Bucket() string {
	return c.bucket
}

func (c *Client) PutFile(ctx context.Context, reader io.Reader, key, contentType string) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("putting s3://%s/%s: %w", c.bucket, key, err)
	}
	return nil
}
