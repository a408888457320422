// Package s3 serves key prefixes of an S3 bucket as containers. A container
// id is a prefix ending in "/", or "" for the bucket root; item ids are
// object keys.
package s3

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/babarot/diet/internal/drive"
)

const deleteBatchSize = 1000

// Config holds the connection settings of the bucket
type Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// API is the subset of the S3 client used by the gateway
type API interface {
	s3.ListObjectsV2APIClient
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// Gateway implements drive.Gateway for one bucket
type Gateway struct {
	client API
	bucket string
}

// NewGateway loads the default AWS configuration, overridden by cfg
func NewGateway(ctx context.Context, cfg Config) (*Gateway, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewGatewayWithClient(client, cfg.Bucket), nil
}

// NewGatewayWithClient wraps an existing client
func NewGatewayWithClient(client API, bucket string) *Gateway {
	return &Gateway{client: client, bucket: bucket}
}

func prefixOf(id string) string {
	if id == "" || strings.HasSuffix(id, "/") {
		return id
	}
	return id + "/"
}

func baseName(key string) string {
	return path.Base(strings.TrimSuffix(key, "/"))
}

func (g *Gateway) Metadata(ctx context.Context, id string) (drive.Metadata, error) {
	if id == "" {
		return drive.Metadata{ID: id, Name: g.bucket}, nil
	}

	out, err := g.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(g.bucket),
		Prefix:  aws.String(prefixOf(id)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return drive.Metadata{}, drive.NewGatewayError("metadata", id, convert(err))
	}
	if aws.ToInt32(out.KeyCount) == 0 && len(out.Contents) == 0 {
		return drive.Metadata{}, drive.NewGatewayError("metadata", id, drive.ErrNotFound)
	}

	return drive.Metadata{ID: id, Name: baseName(id)}, nil
}

func (g *Gateway) List(ctx context.Context, containerID string, foldersOnly bool) ([]drive.Item, error) {
	prefix := prefixOf(containerID)
	paginator := s3.NewListObjectsV2Paginator(g.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(g.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var items []drive.Item
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, drive.NewGatewayError("list", containerID, convert(err))
		}

		for _, p := range page.CommonPrefixes {
			key := aws.ToString(p.Prefix)
			items = append(items, drive.Item{
				ID:       key,
				Name:     baseName(key),
				MimeType: drive.FolderMimeType,
			})
		}

		if foldersOnly {
			continue
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				// folder marker object
				continue
			}
			var modified string
			if obj.LastModified != nil {
				modified = obj.LastModified.UTC().Format(time.RFC3339)
			}
			items = append(items, drive.Item{
				ID:           key,
				Name:         baseName(key),
				ModifiedTime: modified,
				CreatedTime:  modified,
				Size:         obj.Size,
			})
		}
	}

	slog.Debug("listed s3 prefix", "bucket", g.bucket, "prefix", prefix, "count", len(items))
	return items, nil
}

// Delete removes one object, or every object under a prefix id
func (g *Gateway) Delete(ctx context.Context, id string) error {
	if strings.HasSuffix(id, "/") {
		return g.deletePrefix(ctx, id)
	}

	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return drive.NewGatewayError("delete", id, convert(err))
	}
	return nil
}

func (g *Gateway) deletePrefix(ctx context.Context, prefix string) error {
	paginator := s3.NewListObjectsV2Paginator(g.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(g.bucket),
		Prefix: aws.String(prefix),
	})

	var batch []types.ObjectIdentifier
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		out, err := g.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(g.bucket),
			Delete: &types.Delete{
				Objects: batch,
				Quiet:   aws.Bool(true),
			},
		})
		batch = batch[:0]
		if err != nil {
			return err
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("%d objects not deleted, first %s: %s",
				len(out.Errors), aws.ToString(first.Key), aws.ToString(first.Message))
		}
		return nil
	}

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return drive.NewGatewayError("delete", prefix, convert(err))
		}
		for _, obj := range page.Contents {
			batch = append(batch, types.ObjectIdentifier{Key: obj.Key})
			if len(batch) == deleteBatchSize {
				if err := flush(); err != nil {
					return drive.NewGatewayError("delete", prefix, convert(err))
				}
			}
		}
	}

	if err := flush(); err != nil {
		return drive.NewGatewayError("delete", prefix, convert(err))
	}
	return nil
}

func convert(err error) error {
	var noBucket *types.NoSuchBucket
	var noKey *types.NoSuchKey
	switch {
	case errors.As(err, &noBucket), errors.As(err, &noKey):
		return fmt.Errorf("%w: %v", drive.ErrNotFound, err)
	default:
		return err
	}
}
