package lifecycle

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/imagestore"
	"github.com/trailpost/tourcms/pkg/model"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Village{}, &model.GalleryImage{}))

	images, err := imagestore.New(t.TempDir(), "", 0, zerolog.Nop())
	require.NoError(t, err)

	return NewManager(db, images, zerolog.Nop())
}

func pngUpload(name string) *File {
	return &File{
		Reader: io.NopCloser(strings.NewReader("png bytes")),
		Info: imagestore.Upload{
			OriginalName: name,
			ContentType:  "image/png",
			Size:         9,
		},
	}
}

func TestKeepExisting(t *testing.T) {
	assert.True(t, KeepExisting("existing_featured_image"))
	assert.True(t, KeepExisting("featured_image_url"))
	assert.False(t, KeepExisting(""))
	assert.False(t, KeepExisting("1700000000-abcd-hill.jpg"))
}

func TestCreateWithFeatured(t *testing.T) {
	m := newTestManager(t)

	t.Run("stores file then inserts row", func(t *testing.T) {
		var inserted model.Village
		path, err := m.CreateWithFeatured(pngUpload("hill.png"), func(tx *gorm.DB, path string) error {
			inserted = model.Village{DistrictID: 1, Name: "Araku", Slug: "araku", FeaturedImage: path}
			return tx.Create(&inserted).Error
		})
		require.NoError(t, err)
		assert.NotEmpty(t, path)
		assert.True(t, m.Images().Exists(path))
		assert.Equal(t, path, inserted.FeaturedImage)
	})

	t.Run("failed insert cleans up the stored file", func(t *testing.T) {
		var stored string
		_, err := m.CreateWithFeatured(pngUpload("hill.png"), func(tx *gorm.DB, path string) error {
			stored = path
			return errors.New("constraint violated")
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindDatabase))
		assert.False(t, m.Images().Exists(stored), "aborted create must not leave a file behind")
	})

	t.Run("nil file inserts with empty path", func(t *testing.T) {
		path, err := m.CreateWithFeatured(nil, func(tx *gorm.DB, path string) error {
			return tx.Create(&model.Village{DistrictID: 1, Name: "Lambasingi", Slug: "lambasingi"}).Error
		})
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("validation errors pass through unwrapped", func(t *testing.T) {
		_, err := m.CreateWithFeatured(nil, func(tx *gorm.DB, path string) error {
			return apperr.Validation("name is required")
		})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestReplaceFeatured(t *testing.T) {
	m := newTestManager(t)

	oldPath, err := m.Images().Save(strings.NewReader("old"), imagestore.Upload{
		OriginalName: "old.png", ContentType: "image/png", Size: 3,
	})
	require.NoError(t, err)

	village := model.Village{DistrictID: 1, Name: "Araku", Slug: "araku-2", FeaturedImage: oldPath}
	require.NoError(t, m.DB().Create(&village).Error)

	t.Run("old file removed only after commit", func(t *testing.T) {
		newPath, err := m.ReplaceFeatured(oldPath, pngUpload("new.png"), func(tx *gorm.DB, path string) error {
			// At update time both files must exist: replacement is stored
			// before the commit, the old file outlives the transaction.
			assert.True(t, m.Images().Exists(oldPath))
			assert.True(t, m.Images().Exists(path))
			return tx.Model(&model.Village{}).Where("id = ?", village.ID).
				Update("featured_image", path).Error
		})
		require.NoError(t, err)
		assert.NotEqual(t, oldPath, newPath)
		assert.True(t, m.Images().Exists(newPath))
		assert.False(t, m.Images().Exists(oldPath))
	})

	t.Run("failed update keeps old file and removes new one", func(t *testing.T) {
		var current model.Village
		require.NoError(t, m.DB().First(&current, village.ID).Error)

		var staged string
		_, err := m.ReplaceFeatured(current.FeaturedImage, pngUpload("next.png"), func(tx *gorm.DB, path string) error {
			staged = path
			return errors.New("deadlock")
		})
		require.Error(t, err)
		assert.True(t, m.Images().Exists(current.FeaturedImage))
		assert.False(t, m.Images().Exists(staged))
	})

	t.Run("nil file runs update with old path unchanged", func(t *testing.T) {
		var current model.Village
		require.NoError(t, m.DB().First(&current, village.ID).Error)

		got, err := m.ReplaceFeatured(current.FeaturedImage, nil, func(tx *gorm.DB, path string) error {
			assert.Equal(t, current.FeaturedImage, path)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, current.FeaturedImage, got)
		assert.True(t, m.Images().Exists(got))
	})
}

func TestDeleteRecord(t *testing.T) {
	m := newTestManager(t)

	path, err := m.Images().Save(strings.NewReader("img"), imagestore.Upload{
		OriginalName: "v.png", ContentType: "image/png", Size: 3,
	})
	require.NoError(t, err)

	village := model.Village{DistrictID: 1, Name: "Vanjangi", Slug: "vanjangi", FeaturedImage: path}
	require.NoError(t, m.DB().Create(&village).Error)

	t.Run("rows then files", func(t *testing.T) {
		failed, err := m.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
			var paths []string
			var v model.Village
			if err := tx.First(&v, village.ID).Error; err != nil {
				return nil, err
			}
			paths = append(paths, v.FeaturedImage)
			return paths, tx.Delete(&model.Village{}, village.ID).Error
		})
		require.NoError(t, err)
		assert.Empty(t, failed)
		assert.False(t, m.Images().Exists(path))

		var count int64
		m.DB().Model(&model.Village{}).Where("id = ?", village.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("transaction failure deletes nothing", func(t *testing.T) {
		keep := model.Village{DistrictID: 1, Name: "Matsyagundam", Slug: "matsyagundam"}
		require.NoError(t, m.DB().Create(&keep).Error)

		_, err := m.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
			if err := tx.Delete(&model.Village{}, keep.ID).Error; err != nil {
				return nil, err
			}
			return nil, errors.New("second table failed")
		})
		require.Error(t, err)

		var count int64
		m.DB().Model(&model.Village{}).Where("id = ?", keep.ID).Count(&count)
		assert.EqualValues(t, 1, count, "rolled-back delete must keep the row")
	})

	t.Run("missing file is not a failed path", func(t *testing.T) {
		failed, err := m.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
			return []string{"1111111111111-dead-gone.png", ""}, nil
		})
		require.NoError(t, err)
		assert.Empty(t, failed)
	})
}
