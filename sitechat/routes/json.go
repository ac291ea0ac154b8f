package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"sitechat/sitechat/services/responder"
	"sitechat/sitechat/services/scraper"
	"sitechat/sitechat/utils/logging"
	"sitechat/sitechat/utils/types"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// requestError is a malformed request caught before any component runs.
type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error { return &requestError{msg: msg} }

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorLogger.Error("request failed",
			zap.String("trace_id", logging.TraceID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}

// errorStatus picks the HTTP status and the caller-facing message for err.
// Unclassified errors never expose their text.
func errorStatus(err error) (int, string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, reqErr.msg
	}

	var se *scraper.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case scraper.KindInvalidURL:
			return http.StatusBadRequest, se.Message
		case scraper.KindTimeout:
			return http.StatusGatewayTimeout, se.Message
		case scraper.KindNotHTML, scraper.KindEmptyContent:
			return http.StatusUnprocessableEntity, se.Message
		case scraper.KindFetchFailed, scraper.KindParseFailure:
			return http.StatusBadGateway, se.Message
		}
	}

	var re *responder.Error
	if errors.As(err, &re) {
		switch re.Kind {
		case responder.KindInvalidRequestShape:
			return http.StatusBadRequest, re.Message
		case responder.KindNotConfigured:
			return http.StatusServiceUnavailable, re.Message
		case responder.KindGenerationFailed:
			return http.StatusBadGateway, re.Message
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "Request timed out"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// decodeJSON reads at most maxBodyBytes; a larger body fails to decode.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return badRequest("Invalid JSON body")
	}
	return nil
}
