package repositories

import "errors"

// IsNotFound reports whether err carries not-found store semantics.
func IsNotFound(err error) bool {
	var storeErr StoreError
	return errors.As(err, &storeErr) && storeErr.IsNotFound()
}

// IsUnavailable reports whether err marks a transient backend outage.
func IsUnavailable(err error) bool {
	var storeErr StoreError
	return errors.As(err, &storeErr) && storeErr.IsUnavailable()
}
