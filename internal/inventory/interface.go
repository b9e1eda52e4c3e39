// Package inventory keeps the set of backup files found in the configured
// directories. The set is always replaced as a whole, never merged.
package inventory

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../mock/inventory/mock_inventory.go -package=mock_inventory . Repo

// File represents a single file found while walking backup directories
type File struct {
	ID           uint
	Filename     string
	Filepath     string
	LastModified time.Time
	Size         int64
	ScanTime     time.Time
}

// Repo interface representing access to stored files
type Repo interface {
	GetAllFiles(ctx context.Context) ([]*File, error)
	ReplaceAll(ctx context.Context, files []*File) error
}

// DirectoryResult holds the files found beneath one configured directory
type DirectoryResult struct {
	Directory string
	Files     []*File
	Err       error
}
