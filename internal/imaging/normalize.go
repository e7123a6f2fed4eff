package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	// Registered for decoding only; output is always JPEG or PNG.
	_ "image/gif"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/launchpage/api/internal/platform/requestctx"
)

const (
	defaultInitialQuality = 90
	defaultQualityStep    = 10
	defaultQualityFloor   = 10

	// A normalized file may exceed the input by up to 10% before the
	// original is preferred; re-encoding small already-compressed inputs
	// often costs a few percent.
	regressionTolerance = 1.1
)

// ErrEncode is returned when both the JPEG and the PNG encoder fail.
var ErrEncode = errors.New("imaging: image could not be encoded")

// File is an in-memory image file moving through the pipeline.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the payload size in bytes.
func (f File) Size() int64 { return int64(len(f.Data)) }

// Options bound the normalization pipeline.
type Options struct {
	// MaxSizeBytes is the output byte budget. Zero disables the size search
	// and the initial quality is used as-is.
	MaxSizeBytes int64
	// MaxDimension caps the larger of width/height. Zero disables resizing.
	MaxDimension int
	// InitialQuality, QualityStep and QualityFloor steer the iterative JPEG
	// re-encode. Zero values select the defaults (90, 10, 10).
	InitialQuality int
	QualityStep    int
	QualityFloor   int
}

func (o Options) withDefaults() Options {
	if o.InitialQuality <= 0 {
		o.InitialQuality = defaultInitialQuality
	}
	if o.QualityStep <= 0 {
		o.QualityStep = defaultQualityStep
	}
	if o.QualityFloor <= 0 {
		o.QualityFloor = defaultQualityFloor
	}
	return o
}

// Normalize converts an arbitrary raster image into a size- and
// dimension-bounded file suitable for upload.
//
// Undecodable input is not an error: the original file is returned unchanged
// so formats the decoder does not know (HEIC and friends) can still be
// uploaded as-is. After a successful decode the image is scaled down to fit
// Options.MaxDimension (never up) and re-encoded as JPEG at decreasing
// quality until it fits Options.MaxSizeBytes or the quality floor is reached.
// When the JPEG encoder produces nothing, one lossless PNG attempt is made
// before the pipeline fails. The input file is never mutated.
func Normalize(ctx context.Context, file File, opts Options) (File, error) {
	opts = opts.withDefaults()
	logger := requestctx.Logger(ctx)

	src, format, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		logger.Debug("imaging: decode failed, passing original through",
			zap.String("name", file.Name),
			zap.Error(err),
		)
		return file, nil
	}

	bounds := src.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), opts.MaxDimension)
	scaled := scale(src, width, height)

	encoded, quality, err := encodeToBudget(ctx, scaled, opts)
	if err != nil {
		if errors.Is(err, errJPEGUnavailable) {
			return encodePNGFallback(file, scaled)
		}
		return File{}, err
	}

	out := File{
		Name:        replaceExt(file.Name, ".jpg"),
		ContentType: "image/jpeg",
		Data:        encoded,
	}

	// Never let normalization regress the payload.
	if file.Size() > 0 && float64(out.Size()) > float64(file.Size())*regressionTolerance {
		logger.Debug("imaging: normalized output larger than input, keeping original",
			zap.String("name", file.Name),
			zap.Int64("inputBytes", file.Size()),
			zap.Int64("outputBytes", out.Size()),
		)
		return file, nil
	}

	logger.Debug("imaging: normalized",
		zap.String("name", out.Name),
		zap.String("format", format),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("quality", quality),
		zap.Int64("bytes", out.Size()),
	)
	return out, nil
}

var errJPEGUnavailable = errors.New("imaging: jpeg encoder produced no output")

// encodeToBudget re-encodes img as JPEG, lowering quality by Options.QualityStep
// per attempt until the result fits Options.MaxSizeBytes or the floor is hit.
// The returned size sequence over attempts is non-increasing and the loop is
// bounded by (InitialQuality-QualityFloor)/QualityStep+1 iterations.
func encodeToBudget(ctx context.Context, img image.Image, opts Options) ([]byte, int, error) {
	var buf bytes.Buffer
	quality := opts.InitialQuality

	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", errJPEGUnavailable, err)
		}
		if buf.Len() == 0 {
			return nil, 0, errJPEGUnavailable
		}

		if opts.MaxSizeBytes <= 0 || int64(buf.Len()) <= opts.MaxSizeBytes || quality <= opts.QualityFloor {
			break
		}
		quality -= opts.QualityStep
		if quality < opts.QualityFloor {
			quality = opts.QualityFloor
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, quality, nil
}

func encodePNGFallback(original File, img image.Image) (File, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return File{}, fmt.Errorf("%w: png fallback: %v", ErrEncode, err)
	}
	return File{
		Name:        replaceExt(original.Name, ".png"),
		ContentType: "image/png",
		Data:        buf.Bytes(),
	}, nil
}

// fit shrinks (w, h) preserving aspect ratio so max(w, h) <= maxDim.
// Inputs already within the bound are returned unchanged; no upscaling.
func fit(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		scaled := int(float64(h) * float64(maxDim) / float64(w))
		if scaled < 1 {
			scaled = 1
		}
		return maxDim, scaled
	}
	scaled := int(float64(w) * float64(maxDim) / float64(h))
	if scaled < 1 {
		scaled = 1
	}
	return scaled, maxDim
}

func scale(src image.Image, width, height int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func replaceExt(name, ext string) string {
	if name == "" {
		return "image" + ext
	}
	old := path.Ext(name)
	if old == "" {
		return name + ext
	}
	return strings.TrimSuffix(name, old) + ext
}
