package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "planetary-server/internal/shared/errors"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperrors.Validation("request body must be a JSON object")
		case errors.As(err, &maxBytesErr):
			return apperrors.Validationf("request body must not exceed %d bytes", maxBytesErr.Limit)
		default:
			return apperrors.WrapValidation("invalid request body", err)
		}
	}

	if decoder.More() {
		return apperrors.Validation("request body must contain a single JSON object")
	}
	return nil
}
