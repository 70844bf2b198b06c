// Package mock implements an in-memory filemanager.Backend for tests and
// the local sandbox. Documents live in insertion order, IDs are UUIDs and
// no data leaves the process.
package mock

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/OluchukwuJoseph/alx-files-manager/pkg/filemanager"
)

// ValidationError mirrors a request the service rejects with 400 and an
// {"error": <message>} body.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Validation messages, matching the upstream service verbatim.
const (
	ErrMissingName   = ValidationError("Missing name")
	ErrMissingType   = ValidationError("Missing type")
	ErrMissingData   = ValidationError("Missing data")
	ErrParentUnknown = ValidationError("Parent not found")
	ErrFolderData    = ValidationError("A folder doesn't have content")
)

type fileEntry struct {
	doc  filemanager.FileDoc
	data []byte
}

// Mock is an in-memory document store.
type Mock struct {
	mu     sync.RWMutex
	files  map[string]*fileEntry
	order  []string
	userID string
}

// SeedEntry preloads one document. Data holds base64-encoded content and
// may be empty for folders.
type SeedEntry struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID int64  `json:"parentId"`
	Data     string `json:"data,omitempty"`
	IsPublic bool   `json:"isPublic,omitempty"`
}

// New constructs an empty store owned by a synthetic user.
func New() *Mock {
	return &Mock{
		files:  make(map[string]*fileEntry),
		userID: uuid.NewString(),
	}
}

// Seed loads documents from seed entries.
func (m *Mock) Seed(entries []SeedEntry) error {
	for i, e := range entries {
		req := filemanager.FileRequest{
			Type:     e.Type,
			ParentID: e.ParentID,
			Name:     e.Name,
			Data:     e.Data,
			IsPublic: e.IsPublic,
		}
		if _, err := m.CreateFile(context.Background(), req); err != nil {
			return fmt.Errorf("mock filemanager: seed entry %d: %w", i, err)
		}
	}
	return nil
}

// CreateFile validates and stores one document, mirroring POST /files.
func (m *Mock) CreateFile(ctx context.Context, req filemanager.FileRequest) (*filemanager.FileDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrMissingName
	}
	switch req.Type {
	case filemanager.TypeFile, filemanager.TypeFolder, filemanager.TypeImage:
	default:
		return nil, ErrMissingType
	}
	var data []byte
	if req.Type != filemanager.TypeFolder {
		if req.Data == "" {
			return nil, ErrMissingData
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, fmt.Errorf("mock filemanager: decode base64 data: %w", err)
		}
		data = decoded
	}
	if req.ParentID != filemanager.RootParentID {
		return nil, ErrParentUnknown
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	doc := filemanager.FileDoc{
		ID:       uuid.NewString(),
		UserID:   m.userID,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentID: req.ParentID,
	}
	m.files[doc.ID] = &fileEntry{doc: doc, data: data}
	m.order = append(m.order, doc.ID)

	out := doc
	return &out, nil
}

// GetFile returns the document with the given ID.
func (m *Mock) GetFile(ctx context.Context, id string) (*filemanager.FileDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.files[id]
	if !ok {
		return nil, filemanager.ErrNotFound
	}
	out := entry.doc
	return &out, nil
}

// ListFiles pages through documents under parentID in insertion order.
func (m *Mock) ListFiles(ctx context.Context, parentID int64, page int) ([]filemanager.FileDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 0 {
		page = 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]filemanager.FileDoc, 0)
	for _, id := range m.order {
		entry := m.files[id]
		if entry.doc.ParentID == parentID {
			matched = append(matched, entry.doc)
		}
	}
	start := page * filemanager.PageSize
	if start >= len(matched) {
		return []filemanager.FileDoc{}, nil
	}
	end := start + filemanager.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

// SetPublic updates a document's visibility.
func (m *Mock) SetPublic(ctx context.Context, id string, public bool) (*filemanager.FileDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.files[id]
	if !ok {
		return nil, filemanager.ErrNotFound
	}
	entry.doc.IsPublic = public
	out := entry.doc
	return &out, nil
}

// FileData returns the decoded content of a document.
func (m *Mock) FileData(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.files[id]
	if !ok {
		return nil, filemanager.ErrNotFound
	}
	if entry.doc.Type == filemanager.TypeFolder {
		return nil, ErrFolderData
	}
	return append([]byte(nil), entry.data...), nil
}

// Status always reports healthy stores.
func (m *Mock) Status(ctx context.Context) (*filemanager.Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &filemanager.Status{Redis: true, DB: true}, nil
}

// Stats reports one synthetic user plus the stored document count.
func (m *Mock) Stats(ctx context.Context) (*filemanager.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &filemanager.Stats{Users: 1, Files: int64(len(m.files))}, nil
}
