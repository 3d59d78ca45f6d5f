package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst. On failure a 400 envelope is
// written and false is returned.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Message: msgInvalidJSON})
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Client went away; nothing left to do.
		return
	}
}

// ErrorParams groups the parts of an error envelope.
type ErrorParams struct {
	Code int
	// ErrCode is a stable machine-readable code; omitted from the body when empty.
	ErrCode string
	Message string
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteError writes {"error": Message, "code": ErrCode}.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, errorEnvelope{Error: p.Message, Code: p.ErrCode})
}

type messageResponse struct {
	Message string `json:"message"`
}
