package web

import (
	"log/slog"
	"net/http"

	"github.com/cockroachdb/errors"

	cartapp "github.com/dwikikusuma/falc-storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/falc-storefront/internal/catalog/app"
	"github.com/dwikikusuma/falc-storefront/pkg/storage"
)

var ErrBadRequest = errors.New("bad request")

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func httpStatusFromError(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidItem):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable, "UNAVAILABLE", "storage unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := httpStatusFromError(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}
