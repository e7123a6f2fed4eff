package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/launchpage/api/internal/imaging"
)

const (
	fileFieldName   = "file"
	presetFieldName = "upload_preset"

	maxResponseBytes = 1 << 20
)

// HTTPHost submits images to a hosting provider as a multipart POST carrying
// the file and a fixed upload-policy token, and returns the durable URL the
// provider responds with.
type HTTPHost struct {
	endpoint string
	preset   string
	client   *http.Client
}

// HTTPHostOption customises the host.
type HTTPHostOption func(*HTTPHost)

// WithHTTPClient overrides the HTTP client used for submissions.
func WithHTTPClient(client *http.Client) HTTPHostOption {
	return func(h *HTTPHost) {
		if client != nil {
			h.client = client
		}
	}
}

// NewHTTPHost constructs an image host client for the given endpoint and
// upload preset.
func NewHTTPHost(endpoint, preset string, opts ...HTTPHostOption) (*HTTPHost, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("uploader: endpoint is required")
	}

	host := &HTTPHost{
		endpoint: endpoint,
		preset:   strings.TrimSpace(preset),
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(host)
		}
	}
	return host, nil
}

// hostResponse mirrors the provider's JSON body; only the fields the adapter
// consumes are declared.
type hostResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Submit delivers the file and returns the canonical secure URL, preferring
// the https variant when the provider offers both.
func (h *HTTPHost) Submit(ctx context.Context, file imaging.File) (string, error) {
	body, contentType, err := h.encodeBody(file)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("uploader: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &UploadError{StatusCode: resp.StatusCode, Err: err}
	}

	var decoded hostResponse
	// A malformed body on an error response must not mask the status code.
	_ = json.Unmarshal(payload, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if decoded.Error != nil {
			message = strings.TrimSpace(decoded.Error.Message)
		}
		return "", &UploadError{StatusCode: resp.StatusCode, Message: message}
	}

	url := strings.TrimSpace(decoded.SecureURL)
	if url == "" {
		url = strings.TrimSpace(decoded.URL)
	}
	if url == "" {
		return "", ErrMissingURL
	}
	return url, nil
}

func (h *HTTPHost) encodeBody(file imaging.File) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileFieldName, file.Name))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("uploader: encode body: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("uploader: encode body: %w", err)
	}

	if h.preset != "" {
		if err := writer.WriteField(presetFieldName, h.preset); err != nil {
			return nil, "", fmt.Errorf("uploader: encode body: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("uploader: encode body: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
