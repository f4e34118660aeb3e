// Package respond provides utilities for sending HTTP responses in the uniform
// {success, ...} JSON envelope, with error sanitization to prevent leaking
// internal details.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a {success:false, error} envelope with the given message as-is.
// Use for request-level errors whose message is safe to show the client.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, map[string]any{"success": false, "error": message})
}

// SafeError sanitizes error messages before returning them to clients.
// Validation-style errors are returned as-is; anything else (and every 5xx)
// becomes a generic message, with the detail logged server-side.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	safeFragments := []string{
		"required",
		"invalid",
		"not found",
		"must be",
		"cannot be",
		"too long",
	}

	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeFragments {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		Error(w, code, msg)
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", err))
	Error(w, code, "internal server error")
}
