// Package archive snapshots the remote draft file to an S3-compatible
// bucket. Archiving is best-effort: failures are logged by the caller and
// never affect the request that triggered them.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

var archiveLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	archiveLogger = l
}

type S3Archiver struct { // implements server.Archiver
	client *s3.Client

	bucket string
	prefix string
}

func NewS3Archiver(accessKeyID, accessKeySecret, baseEndpoint, bucket, prefix string) (*S3Archiver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing S3 client: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if baseEndpoint != "" {
			o.BaseEndpoint = aws.String(baseEndpoint)
		}
	})

	return &S3Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Archive uploads one timestamped snapshot of the drafts file.
func (a *S3Archiver) Archive(data []byte) error {
	key := path.Join(a.prefix, time.Now().UTC().Format("20060102T150405")+".json")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("error uploading drafts snapshot: %w", err)
	}

	archiveLogger.Info().Str("bucket", a.bucket).Str("key", key).Msg("Drafts snapshot archived")
	return nil
}
