package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/model"
)

func attach(t *testing.T, m *Manager, ownerID uint, name string) *model.GalleryImage {
	t.Helper()
	img, err := m.AttachGalleryImage(model.KindVillage, ownerID, *pngUpload(name), GalleryMeta{
		AltText: name,
	})
	require.NoError(t, err)
	return img
}

func TestAttachGalleryImageOrdering(t *testing.T) {
	m := newTestManager(t)

	first := attach(t, m, 7, "one.png")
	second := attach(t, m, 7, "two.png")
	other := attach(t, m, 8, "other.png")

	assert.Equal(t, 0, first.DisplayOrder)
	assert.Equal(t, 1, second.DisplayOrder)
	assert.Equal(t, 0, other.DisplayOrder, "orders are per owner")
	assert.True(t, m.Images().Exists(first.Path))
}

func TestDetachGalleryImage(t *testing.T) {
	m := newTestManager(t)
	img := attach(t, m, 7, "one.png")

	t.Run("wrong owner is not found", func(t *testing.T) {
		err := m.DetachGalleryImage(model.KindVillage, 99, img.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		assert.True(t, m.Images().Exists(img.Path))
	})

	t.Run("removes row then file", func(t *testing.T) {
		require.NoError(t, m.DetachGalleryImage(model.KindVillage, 7, img.ID))
		assert.False(t, m.Images().Exists(img.Path))

		err := m.DetachGalleryImage(model.KindVillage, 7, img.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestReorderGallery(t *testing.T) {
	m := newTestManager(t)

	a := attach(t, m, 7, "a.png")
	b := attach(t, m, 7, "b.png")
	c := attach(t, m, 7, "c.png")
	foreign := attach(t, m, 8, "foreign.png")

	t.Run("assigns list positions", func(t *testing.T) {
		require.NoError(t, m.ReorderGallery(model.KindVillage, 7, []uint{c.ID, a.ID, b.ID}))

		images, err := m.GalleryFor(model.KindVillage, 7)
		require.NoError(t, err)
		require.Len(t, images, 3)
		assert.Equal(t, c.ID, images[0].ID)
		assert.Equal(t, a.ID, images[1].ID)
		assert.Equal(t, b.ID, images[2].ID)
	})

	t.Run("resubmitting the same order is a no-op", func(t *testing.T) {
		require.NoError(t, m.ReorderGallery(model.KindVillage, 7, []uint{c.ID, a.ID, b.ID}))

		images, err := m.GalleryFor(model.KindVillage, 7)
		require.NoError(t, err)
		assert.Equal(t, []uint{c.ID, a.ID, b.ID}, []uint{images[0].ID, images[1].ID, images[2].ID})
	})

	t.Run("foreign id rejects the whole batch", func(t *testing.T) {
		err := m.ReorderGallery(model.KindVillage, 7, []uint{a.ID, foreign.ID})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))

		images, err := m.GalleryFor(model.KindVillage, 7)
		require.NoError(t, err)
		assert.Equal(t, c.ID, images[0].ID, "rejected reorder must not change anything")
	})

	t.Run("empty list is invalid", func(t *testing.T) {
		err := m.ReorderGallery(model.KindVillage, 7, nil)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestGalleryCascadeHelpers(t *testing.T) {
	m := newTestManager(t)

	a := attach(t, m, 20, "a.png")
	b := attach(t, m, 21, "b.png")
	keep := attach(t, m, 22, "keep.png")

	err := m.DB().Transaction(func(tx *gorm.DB) error {
		paths, err := GalleryPathsTx(tx, model.KindVillage, []uint{20, 21})
		if err != nil {
			return err
		}
		assert.ElementsMatch(t, []string{a.Path, b.Path}, paths)
		return DeleteGalleryRowsTx(tx, model.KindVillage, []uint{20, 21})
	})
	require.NoError(t, err)

	var count int64
	m.DB().Model(&model.GalleryImage{}).Count(&count)
	assert.EqualValues(t, 1, count)

	remaining, err := m.GalleryFor(model.KindVillage, 22)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].ID)
}
