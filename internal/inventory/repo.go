package inventory

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const insertBatchSize = 500

// FileModel is the database representation of a File
type FileModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Filename     string    `gorm:"column:filename;not null"`
	Filepath     string    `gorm:"column:filepath;not null"`
	LastModified time.Time `gorm:"column:last_modified"`
	Size         int64     `gorm:"column:size"`
	ScanTime     time.Time `gorm:"column:scan_time"`
}

// TableName keeps the table name used by earlier versions of the database
func (FileModel) TableName() string {
	return "scanned_files"
}

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo returns a new inventory sqlite repo
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{db: db}
}

// GetAllFiles returns every stored file
func (r *SqliteRepo) GetAllFiles(ctx context.Context) ([]*File, error) {
	models := []FileModel{}

	if result := r.db.WithContext(ctx).Order("id").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	files := make([]*File, 0, len(models))

	for i := range models {
		files = append(files, modelToFile(&models[i]))
	}

	return files, nil
}

// ReplaceAll clears every stored file and stores files in their place
// within a single transaction
func (r *SqliteRepo) ReplaceAll(ctx context.Context, files []*File) error {
	now := time.Now()

	models := make([]*FileModel, 0, len(files))

	for _, f := range files {
		m := fileToModel(f)
		m.ScanTime = now
		models = append(models, m)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&FileModel{}).Error; err != nil {
			return err
		}

		if len(models) == 0 {
			return nil
		}

		return tx.CreateInBatches(models, insertBatchSize).Error
	})
}

// helpers
func modelToFile(model *FileModel) *File {
	return &File{
		ID:           model.ID,
		Filename:     model.Filename,
		Filepath:     model.Filepath,
		LastModified: model.LastModified,
		Size:         model.Size,
		ScanTime:     model.ScanTime,
	}
}

func fileToModel(file *File) *FileModel {
	return &FileModel{
		Filename:     file.Filename,
		Filepath:     file.Filepath,
		LastModified: file.LastModified,
		Size:         file.Size,
	}
}
