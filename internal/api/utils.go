package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// ErrorResponse writes {"success": false, "error": message, "request_id": ...}.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, map[string]any{
		"success":    false,
		"error":      message,
		"request_id": middleware.GetReqID(r.Context()),
	})
}

func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	js, err := json.Marshal(data)
	if err != nil {
		logResponseError(r, "Failed to marshal JSON response", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		// status line is already out
		logResponseError(r, "Failed to write response body", err)
	}
}

func logResponseError(r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg,
		slog.Any("error", err),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

type decodeOptions struct {
	allowUnknown bool
}

// DecodeOption tunes DecodeJSONBody.
type DecodeOption func(*decodeOptions)

// AllowUnknownFields makes the decoder ignore keys dst does not declare,
// for routes whose browser clients may send extra form state.
func AllowUnknownFields() DecodeOption {
	return func(o *decodeOptions) { o.allowUnknown = true }
}

// DecodeJSONBody decodes exactly one JSON value of at most 1 MiB into dst.
// Unknown keys are rejected unless AllowUnknownFields is passed.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, opts ...DecodeOption) error {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if !o.allowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(dst); err != nil {
		return describeDecodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func describeDecodeError(err error) error {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		tooLargeErr *http.MaxBytesError
		invalidErr  *json.InvalidUnmarshalError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("body contains incorrect JSON type for field %q (wanted %s)", typeErr.Field, typeErr.Type)
	case errors.As(err, &typeErr):
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", typeErr.Offset)
	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fmt.Errorf("body contains unknown key %q", field)
	case errors.As(err, &tooLargeErr):
		return fmt.Errorf("body must not be larger than %d bytes", tooLargeErr.Limit)
	case errors.As(err, &invalidErr):
		panic(fmt.Errorf("developer error: invalid argument passed to json.Unmarshal: %w", err))
	default:
		return fmt.Errorf("error decoding JSON body: %w", err)
	}
}
