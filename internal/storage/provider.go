// Package storage provides flat-directory file access with atomic writes.
package storage

import "github.com/starford/portal/internal/models"

// Provider is the interface for file operations in one directory.
// Names are plain file names, never paths.
type Provider interface {
	// List returns metadata for every file with the provider's extension.
	List() ([]models.FileMetadata, error)
	// Read returns the raw bytes of the named file.
	Read(name string) ([]byte, error)
	// Write atomically writes content to the named file.
	Write(name string, content []byte) error
	// Delete removes the named file.
	Delete(name string) error
}

var _ Provider = (*FS)(nil)
