package inventory

import (
	"context"
	"fmt"

	"github.com/robgonnella/backupcheck/internal/logger"
)

// DirectoryWalker finds files beneath a set of directories
type DirectoryWalker interface {
	Walk(ctx context.Context, dirs []string) ([]*DirectoryResult, error)
}

// RescanReport summarizes a completed directory scan
type RescanReport struct {
	Directories map[string]int
	Total       int
}

// InventoryService keeps the stored file inventory in sync with the
// configured directories
type InventoryService struct {
	log    logger.Logger
	repo   Repo
	walker DirectoryWalker
}

// NewService returns a new instance of InventoryService
func NewService(repo Repo, walker DirectoryWalker) *InventoryService {
	return &InventoryService{
		log:    logger.New().Component("inventory"),
		repo:   repo,
		walker: walker,
	}
}

// GetAllFiles returns the current file inventory
func (s *InventoryService) GetAllFiles(ctx context.Context) ([]*File, error) {
	return s.repo.GetAllFiles(ctx)
}

// Rescan walks dirs and replaces the stored inventory with what was found.
// The previous inventory is kept if the walk fails.
func (s *InventoryService) Rescan(ctx context.Context, dirs []string) (*RescanReport, error) {
	results, err := s.walker.Walk(ctx, dirs)

	if err != nil {
		return nil, fmt.Errorf("failed to walk directories: %w", err)
	}

	report := &RescanReport{Directories: map[string]int{}}
	files := []*File{}

	for _, r := range results {
		report.Directories[r.Directory] = len(r.Files)
		report.Total += len(r.Files)
		files = append(files, r.Files...)
	}

	if err := s.repo.ReplaceAll(ctx, files); err != nil {
		return nil, fmt.Errorf("failed to store file inventory: %w", err)
	}

	s.log.Info().
		Int("directories", len(results)).
		Int("files", report.Total).
		Msg("file inventory refreshed")

	return report, nil
}
