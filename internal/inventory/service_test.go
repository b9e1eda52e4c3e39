package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/backupcheck/internal/inventory"
	mock_inventory "github.com/robgonnella/backupcheck/internal/mock/inventory"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInventoryService(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockRepo := mock_inventory.NewMockRepo(ctrl)

	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/a/one.tar", []byte("1"), 0644)
	afero.WriteFile(fs, "/a/two.tar", []byte("2"), 0644)
	afero.WriteFile(fs, "/b/three.tar", []byte("3"), 0644)

	service := inventory.NewService(mockRepo, inventory.NewWalker(fs))

	ctx := context.Background()

	t.Run("rescan replaces inventory with walked files", func(st *testing.T) {
		mockRepo.EXPECT().ReplaceAll(ctx, gomock.Len(3)).Return(nil)

		report, err := service.Rescan(ctx, []string{"/a", "/b", "/missing"})

		assert.NoError(st, err)
		assert.Equal(st, 3, report.Total)
		assert.Equal(st, 2, report.Directories["/a"])
		assert.Equal(st, 1, report.Directories["/b"])
		assert.Equal(st, 0, report.Directories["/missing"])
	})

	t.Run("rescan returns repo errors", func(st *testing.T) {
		mockRepo.EXPECT().ReplaceAll(ctx, gomock.Any()).Return(errors.New("disk full"))

		_, err := service.Rescan(ctx, []string{"/a"})

		assert.Error(st, err)
	})

	t.Run("does not touch stored inventory when walk fails", func(st *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := service.Rescan(cancelled, []string{"/a"})

		assert.ErrorIs(st, err, context.Canceled)
	})

	t.Run("gets all files", func(st *testing.T) {
		files := []*inventory.File{{Filename: "one.tar"}}

		mockRepo.EXPECT().GetAllFiles(ctx).Return(files, nil)

		found, err := service.GetAllFiles(ctx)

		assert.NoError(st, err)
		assert.Equal(st, files, found)
	})
}
