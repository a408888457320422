package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/babarot/diet/internal/config"
	"github.com/babarot/diet/internal/drive"
	"github.com/babarot/diet/internal/drive/gdrive"
	"github.com/babarot/diet/internal/drive/local"
	"github.com/babarot/diet/internal/drive/s3"
)

const (
	backendGDrive = "gdrive"
	backendS3     = "s3"
	backendLocal  = "local"
)

// newGateway creates the gateway for the configured backend. in and out are
// used by the Google Drive authorization flow.
func newGateway(ctx context.Context, cfg config.Backend, in *bufio.Reader, out io.Writer) (drive.Gateway, error) {
	switch cfg.Type {
	case backendGDrive:
		auth := gdrive.Auth{
			CredentialsFile: cfg.GDrive.Credentials,
			TokenFile:       cfg.GDrive.Token,
			In:              in,
			Out:             out,
		}
		client, err := auth.Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to authorize google drive: %w", err)
		}
		return gdrive.NewGateway(ctx, client)

	case backendS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("backend.s3.bucket is required for the s3 backend")
		}
		return s3.NewGateway(ctx, s3.Config{
			Bucket:       cfg.S3.Bucket,
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.UsePathStyle,
		})

	case backendLocal:
		return local.NewGateway(cfg.Local.Root)

	default:
		return nil, fmt.Errorf("unknown backend type: %v", cfg.Type)
	}
}

func (c CLI) backend() config.Backend {
	b := c.config.Backend
	if c.option.Backend != "" {
		b.Type = c.option.Backend
	}
	return b
}
