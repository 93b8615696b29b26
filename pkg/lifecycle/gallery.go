package lifecycle

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/model"
)

// GalleryMeta carries the per-image fields supplied alongside an upload.
type GalleryMeta struct {
	AltText string
	Caption string
}

// AttachGalleryImage stores the upload and appends it to the owner's gallery
// at the next display order. The row insert and the order computation share
// one transaction; on failure the stored file is cleaned up.
func (m *Manager) AttachGalleryImage(kind model.EntityKind, ownerID uint, file File, meta GalleryMeta) (*model.GalleryImage, error) {
	path, err := m.images.Save(file.Reader, file.Info)
	if err != nil {
		return nil, err
	}

	img := model.GalleryImage{
		OwnerKind:    kind,
		OwnerID:      ownerID,
		Path:         path,
		OriginalName: file.Info.OriginalName,
		AltText:      meta.AltText,
		Caption:      meta.Caption,
	}

	err = m.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder *int
		row := tx.Model(&model.GalleryImage{}).
			Select("MAX(display_order)").
			Where("owner_kind = ? AND owner_id = ?", kind, ownerID).
			Row()
		if err := row.Scan(&maxOrder); err == nil && maxOrder != nil {
			img.DisplayOrder = *maxOrder + 1
		}
		return tx.Create(&img).Error
	})
	if err != nil {
		if delErr := m.images.Delete(path); delErr != nil {
			m.logger.Warn().Str("path", path).Err(delErr).
				Msg("failed to clean up file after aborted gallery attach")
		}
		return nil, wrapDB("gallery attach", err)
	}

	return &img, nil
}

// DetachGalleryImage removes one gallery image row and then its file.
func (m *Manager) DetachGalleryImage(kind model.EntityKind, ownerID, imageID uint) error {
	var img model.GalleryImage
	err := m.db.Where("id = ? AND owner_kind = ? AND owner_id = ?", imageID, kind, ownerID).
		First(&img).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("gallery image", imageID)
		}
		return wrapDB("gallery detach", err)
	}

	err = m.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&model.GalleryImage{}, img.ID).Error
	})
	if err != nil {
		return wrapDB("gallery detach", err)
	}

	if delErr := m.images.Delete(img.Path); delErr != nil {
		m.logger.Warn().Str("path", img.Path).Err(delErr).
			Msg("gallery image row deleted but file removal failed")
	}
	return nil
}

// ReorderGallery assigns each image the zero-based index of its position in
// ids as the new display order. Every id must belong to the owner; unknown
// or foreign ids reject the whole batch. Applied in one transaction, so
// re-submitting the same list is idempotent.
func (m *Manager) ReorderGallery(kind model.EntityKind, ownerID uint, ids []uint) error {
	if len(ids) == 0 {
		return apperr.Validation("image id list is required")
	}

	var owned []uint
	err := m.db.Model(&model.GalleryImage{}).
		Where("owner_kind = ? AND owner_id = ?", kind, ownerID).
		Pluck("id", &owned).Error
	if err != nil {
		return wrapDB("gallery reorder", err)
	}

	ownedSet := make(map[uint]bool, len(owned))
	for _, id := range owned {
		ownedSet[id] = true
	}
	for _, id := range ids {
		if !ownedSet[id] {
			return apperr.Validation(fmt.Sprintf("image %d does not belong to this record", id))
		}
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(&model.GalleryImage{}).
				Where("id = ?", id).
				Update("display_order", i).Error
			if err != nil {
				return wrapDB("gallery reorder", err)
			}
		}
		return nil
	})
}

// GalleryFor returns the owner's images ordered by display order.
func (m *Manager) GalleryFor(kind model.EntityKind, ownerID uint) ([]model.GalleryImage, error) {
	var images []model.GalleryImage
	err := m.db.Where("owner_kind = ? AND owner_id = ?", kind, ownerID).
		Order("display_order ASC, id ASC").
		Find(&images).Error
	if err != nil {
		return nil, wrapDB("gallery list", err)
	}
	return images, nil
}

// GalleryPathsTx collects the file paths of every gallery image owned by the
// given records, for cascade deletion inside a transaction.
func GalleryPathsTx(tx *gorm.DB, kind model.EntityKind, ownerIDs []uint) ([]string, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var paths []string
	err := tx.Model(&model.GalleryImage{}).
		Where("owner_kind = ? AND owner_id IN ?", kind, ownerIDs).
		Pluck("path", &paths).Error
	if err != nil {
		return nil, wrapDB("gallery paths", err)
	}
	return paths, nil
}

// DeleteGalleryRowsTx deletes the gallery rows for the given records inside
// an existing transaction. Files are the caller's responsibility, gathered
// beforehand via GalleryPathsTx.
func DeleteGalleryRowsTx(tx *gorm.DB, kind model.EntityKind, ownerIDs []uint) error {
	if len(ownerIDs) == 0 {
		return nil
	}
	return tx.Where("owner_kind = ? AND owner_id IN ?", kind, ownerIDs).
		Delete(&model.GalleryImage{}).Error
}
