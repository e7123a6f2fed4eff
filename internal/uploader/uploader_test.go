package uploader

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/launchpage/api/internal/imaging"
)

type stubHost struct {
	submitted []imaging.File
	url       string
	err       error
}

func (s *stubHost) Submit(_ context.Context, file imaging.File) (string, error) {
	s.submitted = append(s.submitted, file)
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func noisePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	u, err := New(Deps{Host: &stubHost{url: "https://img.example.com/x"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := u.Upload(context.Background(), imaging.File{Name: "empty.jpg"}); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
}

func TestUploadSubmitsNormalizedFile(t *testing.T) {
	host := &stubHost{url: "https://img.example.com/out.jpg"}
	u, err := New(Deps{
		Host:    host,
		Imaging: imaging.Options{MaxSizeBytes: 10 << 20, MaxDimension: 256},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	in := imaging.File{Name: "big.png", ContentType: "image/png", Data: noisePNG(t, 1200, 1200)}
	url, err := u.Upload(context.Background(), in)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != host.url {
		t.Fatalf("unexpected url %q", url)
	}

	if len(host.submitted) != 1 {
		t.Fatalf("expected one submission, got %d", len(host.submitted))
	}
	sent := host.submitted[0]
	if sent.Name != "big.jpg" || sent.ContentType != "image/jpeg" {
		t.Fatalf("expected normalized jpeg, got %q (%s)", sent.Name, sent.ContentType)
	}
	if sent.Size() >= in.Size() {
		t.Fatalf("normalized file not smaller: %d >= %d", sent.Size(), in.Size())
	}
}

func TestUploadFallsBackToOriginalForUndecodableInput(t *testing.T) {
	host := &stubHost{url: "https://img.example.com/raw"}
	u, err := New(Deps{
		Host:    host,
		Imaging: imaging.Options{MaxSizeBytes: 1024, MaxDimension: 64},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	in := imaging.File{Name: "clip.heic", ContentType: "image/heic", Data: []byte("opaque bytes the decoder rejects")}
	if _, err := u.Upload(context.Background(), in); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	sent := host.submitted[0]
	if sent.Name != in.Name || !bytes.Equal(sent.Data, in.Data) {
		t.Fatal("expected original file submitted unchanged")
	}
}

func TestUploadPropagatesHostError(t *testing.T) {
	hostErr := &UploadError{StatusCode: 400, Message: "Invalid upload preset"}
	u, err := New(Deps{Host: &stubHost{err: hostErr}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = u.Upload(context.Background(), imaging.File{Name: "x.bin", Data: []byte("not an image")})
	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected *UploadError, got %v", err)
	}
	if !strings.Contains(uploadErr.Error(), "Invalid upload preset") {
		t.Fatalf("provider message lost: %v", uploadErr)
	}
}

func TestNewRequiresHost(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Fatal("expected error for missing host")
	}
}
