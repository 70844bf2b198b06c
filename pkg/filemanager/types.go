package filemanager

import (
	"encoding/json"
	"errors"
)

// Accepted document types.
const (
	TypeFile   = "file"
	TypeFolder = "folder"
	TypeImage  = "image"
)

// RootParentID addresses the root container.
const RootParentID int64 = 0

// PageSize is the fixed page length of file listings.
const PageSize = 20

// FileRequest is the payload of a create-file call. Data carries the
// base64 encoding of the file content and is empty for folders. IsPublic
// is omitted from the wire when false, matching the original seed script's
// four-field body.
type FileRequest struct {
	Type     string `json:"type"`
	ParentID int64  `json:"parentId"`
	Name     string `json:"name"`
	Data     string `json:"data,omitempty"`
	IsPublic bool   `json:"isPublic,omitempty"`
}

// FileDoc is a file document as reported by the service. Raw preserves
// the exact response body the document was decoded from.
type FileDoc struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID int64  `json:"parentId"`

	Raw json.RawMessage `json:"-"`
}

// Status reports the health of the service's backing stores.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats reports document counts.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

var (
	// ErrUnauthorized indicates a missing or rejected token.
	ErrUnauthorized = errors.New("filemanager: unauthorized")
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("filemanager: not found")
)
