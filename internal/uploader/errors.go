package uploader

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFile is returned when Upload is invoked without file content.
	ErrNoFile = errors.New("uploader: no file provided")
	// ErrMissingURL is returned when the host accepted the upload but its
	// response carries no usable secure reference.
	ErrMissingURL = errors.New("uploader: no URL returned by image host")
)

// UploadError reports a rejected or failed upload attempt. Message carries the
// provider-supplied detail when the response body exposed one.
type UploadError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "" && e.StatusCode > 0:
		return fmt.Sprintf("uploader: upload failed (%d): %s", e.StatusCode, e.Message)
	case e.Message != "":
		return "uploader: upload failed: " + e.Message
	case e.Err != nil:
		return "uploader: upload failed: " + e.Err.Error()
	default:
		return "uploader: upload failed"
	}
}

// Unwrap exposes the underlying transport error when present.
func (e *UploadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
