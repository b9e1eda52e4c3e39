package inventory

import (
	"context"
	"os"
	"path/filepath"

	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/spf13/afero"
)

// Walker finds regular files beneath a set of directories
type Walker struct {
	fs  afero.Fs
	log logger.Logger
}

// NewWalker returns a Walker reading from fs. Pass afero.NewOsFs() for the
// real filesystem.
func NewWalker(fs afero.Fs) *Walker {
	return &Walker{
		fs:  fs,
		log: logger.New().Component("inventory"),
	}
}

// Walk recursively walks every directory in dirs and returns one result per
// directory, in order. Unreadable entries are logged and skipped. A missing
// directory yields a result with no files and its error set.
func (w *Walker) Walk(ctx context.Context, dirs []string) ([]*DirectoryResult, error) {
	results := make([]*DirectoryResult, 0, len(dirs))

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := w.walkDir(ctx, dir)

		if err != nil {
			return results, err
		}

		results = append(results, result)
	}

	return results, nil
}

func (w *Walker) walkDir(ctx context.Context, dir string) (*DirectoryResult, error) {
	result := &DirectoryResult{Directory: dir, Files: []*File{}}

	if _, err := w.fs.Stat(dir); err != nil {
		w.log.Warn().Err(err).Str("directory", dir).Msg("skipping directory")
		result.Err = err
		return result, nil
	}

	err := afero.Walk(w.fs, dir, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			w.log.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")

			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		result.Files = append(result.Files, &File{
			Filename:     info.Name(),
			Filepath:     path,
			LastModified: info.ModTime(),
			Size:         info.Size(),
		})

		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}
