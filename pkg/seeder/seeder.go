// Package seeder populates a files-manager instance with sample text
// documents, reproducing the behaviour of the project's original seeding
// script: N sequential create-file calls named file_1..file_N whose
// payloads are the base64-encoded strings "File {i} contents".
package seeder

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/OluchukwuJoseph/alx-files-manager/internal/filesapi"
	"github.com/OluchukwuJoseph/alx-files-manager/pkg/filemanager"
)

// Defaults matching the original script.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultCount   = 20
)

// Plan returns the ordered create-file requests for a seeding run of the
// given size. The i-th request (1-indexed) is named file_{i} and carries
// base64("File {i} contents").
func Plan(count int, parentID int64) []filemanager.FileRequest {
	if count < 0 {
		count = 0
	}
	reqs := make([]filemanager.FileRequest, 0, count)
	for i := 1; i <= count; i++ {
		reqs = append(reqs, filemanager.FileRequest{
			Type:     filemanager.TypeFile,
			ParentID: parentID,
			Name:     fmt.Sprintf("file_%d", i),
			Data:     base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("File %d contents", i))),
		})
	}
	return reqs
}

// Seeder submits a plan one request at a time and reports each response.
type Seeder struct {
	client *filemanager.Client
	out    io.Writer
}

// New constructs a Seeder writing response lines to out.
func New(client *filemanager.Client, out io.Writer) *Seeder {
	return &Seeder{client: client, out: out}
}

// Run seeds count files under parentID. Submission is strictly sequential:
// the next request is only issued once the previous response has been
// printed. The first failure, including a non-2xx status or a non-JSON
// response body, aborts the remaining submissions and is returned. Nothing
// is retried. A count of zero or less runs with DefaultCount.
func (s *Seeder) Run(ctx context.Context, count int, parentID int64) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("seeder: client is required")
	}
	if count <= 0 {
		count = DefaultCount
	}
	for _, req := range Plan(count, parentID) {
		doc, err := s.client.CreateFile(ctx, req)
		if err != nil {
			return fmt.Errorf("seeder: create %s: %w", req.Name, err)
		}
		line, err := renderDoc(doc)
		if err != nil {
			return fmt.Errorf("seeder: render response for %s: %w", req.Name, err)
		}
		if _, err := fmt.Fprintln(s.out, line); err != nil {
			return fmt.Errorf("seeder: write response for %s: %w", req.Name, err)
		}
	}
	return nil
}

// renderDoc yields one compact JSON line per created document, preferring
// the verbatim response body when the backend preserved it.
func renderDoc(doc *filemanager.FileDoc) (string, error) {
	if doc != nil && len(doc.Raw) > 0 {
		line, err := filesapi.Compact(doc.Raw)
		if err != nil {
			return "", err
		}
		return string(line), nil
	}
	line, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(line), nil
}
