package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// maxUploadBytes caps the in-memory portion of a multipart update request
const maxUploadBytes = 32 << 20

// payloadField is the multipart form value carrying the JSON partial update
const payloadField = "payload"

// isMultipart reports whether the request carries a multipart/form-data body
func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "multipart/form-data"
}

// decodeJSONBody decodes the request body into update. An empty body is a
// valid empty update, every field stays untouched
func decodeJSONBody(r *http.Request, update interface{}) error {
	err := json.NewDecoder(r.Body).Decode(update)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// decodeMultipartPayload decodes the JSON partial update embedded in the
// "payload" form value of a multipart request. A missing or empty payload
// is a valid empty update
func decodeMultipartPayload(r *http.Request, update interface{}) error {
	payload := r.FormValue(payloadField)
	if payload == "" {
		return nil
	}
	return json.Unmarshal([]byte(payload), update)
}
