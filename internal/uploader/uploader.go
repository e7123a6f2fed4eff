package uploader

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/launchpage/api/internal/imaging"
	"github.com/launchpage/api/internal/platform/requestctx"
)

// Growth beyond this factor means normalization regressed the payload and the
// original file is submitted instead.
const regressionTolerance = 1.1

// Host delivers a prepared image file to its destination and returns the
// durable reference URL.
type Host interface {
	Submit(ctx context.Context, file imaging.File) (string, error)
}

// Uploader runs the full submission flow: normalize, guard against
// compression regressions, then hand off to the configured Host.
type Uploader struct {
	host  Host
	opts  imaging.Options
	clock func() time.Time
}

// Deps wires dependencies for the Uploader.
type Deps struct {
	Host    Host
	Imaging imaging.Options
	Clock   func() time.Time
}

// New constructs an Uploader.
func New(deps Deps) (*Uploader, error) {
	if deps.Host == nil {
		return nil, errors.New("uploader: host is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Uploader{
		host:  deps.Host,
		opts:  deps.Imaging,
		clock: clock,
	}, nil
}

// Upload normalizes the file and submits it, returning the hosted URL.
//
// Normalization failures are never fatal: if the pipeline errors out or
// produces a larger payload the original file is submitted unchanged. Host
// failures surface as *UploadError or ErrMissingURL.
func (u *Uploader) Upload(ctx context.Context, file imaging.File) (string, error) {
	if len(file.Data) == 0 {
		return "", ErrNoFile
	}

	uploadID := ulid.MustNew(ulid.Timestamp(u.clock()), ulid.DefaultEntropy()).String()
	logger := requestctx.Logger(ctx).With(zap.String("uploadId", uploadID))

	candidate := file
	normalized, err := imaging.Normalize(ctx, file, u.opts)
	switch {
	case err != nil:
		logger.Warn("uploader: normalization failed, sending original", zap.Error(err))
	case normalized.Size() == 0:
		logger.Warn("uploader: normalization produced empty output, sending original")
	case float64(normalized.Size()) > float64(file.Size())*regressionTolerance:
		logger.Debug("uploader: normalization regressed size, sending original",
			zap.Int64("inputBytes", file.Size()),
			zap.Int64("normalizedBytes", normalized.Size()),
		)
	default:
		candidate = normalized
	}

	url, err := u.host.Submit(ctx, candidate)
	if err != nil {
		logger.Warn("uploader: submission failed",
			zap.String("name", candidate.Name),
			zap.Int64("bytes", candidate.Size()),
			zap.Error(err),
		)
		return "", err
	}

	logger.Info("uploader: image uploaded",
		zap.String("name", candidate.Name),
		zap.Int64("bytes", candidate.Size()),
		zap.String("url", url),
	)
	return url, nil
}
