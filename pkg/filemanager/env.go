package filemanager

import (
	"fmt"
	"os"
	"strings"

	"github.com/OluchukwuJoseph/alx-files-manager/internal/httpx"
)

const (
	envFilesURL   = "FILES_API_URL"
	envFilesToken = "FILES_API_TOKEN"
)

// NewFromEnv initialises a client from FILES_API_URL and, when set,
// FILES_API_TOKEN. The URL is mandatory.
func NewFromEnv(opts ...httpx.Option) (*Client, error) {
	baseURL := strings.TrimSpace(os.Getenv(envFilesURL))
	if baseURL == "" {
		return nil, fmt.Errorf("filemanager: %s is required", envFilesURL)
	}
	token := strings.TrimSpace(os.Getenv(envFilesToken))
	client, err := New(baseURL, token, opts...)
	if err != nil {
		return nil, fmt.Errorf("filemanager: init HTTP client: %w", err)
	}
	return client, nil
}
