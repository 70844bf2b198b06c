// Package filesapi handles the response conventions of the files-manager
// API: success bodies are plain JSON documents and failures carry a flat
// {"error": "<message>"} envelope next to a 4xx/5xx status.
package filesapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ErrorMessage extracts the error envelope from a response body. The
// second return value reports whether an envelope was present.
func ErrorMessage(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", false
	}
	var envelope struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Error == nil {
		return "", false
	}
	return *envelope.Error, true
}

// Compact validates body as JSON and returns it without insignificant
// whitespace, suitable for line-oriented printing.
func Compact(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("filesapi: empty response body")
	}
	buf := &bytes.Buffer{}
	if err := json.Compact(buf, trimmed); err != nil {
		return nil, fmt.Errorf("filesapi: response is not valid JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode unmarshals body into out. An empty body decodes as JSON null.
func Decode(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		trimmed = []byte("null")
	}
	return json.Unmarshal(trimmed, out)
}
