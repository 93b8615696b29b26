// Package lifecycle ties an uploaded file's existence to its owning record's
// existence. Every mutation that touches both the database and the image
// store goes through here so the ordering invariants hold in one place:
// a committed record never points at a file that was not stored, and an old
// file is only removed after the new reference is committed.
package lifecycle

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/imagestore"
)

// keepSentinels are the client-supplied values that mean "leave the current
// featured image alone" on update.
var keepSentinels = map[string]bool{
	"existing_featured_image": true,
	"featured_image_url":      true,
}

// KeepExisting reports whether a submitted image value is the no-change
// sentinel.
func KeepExisting(value string) bool {
	return keepSentinels[value]
}

// File is an incoming upload to be staged by the manager. The caller owns
// closing Reader once the operation completes.
type File struct {
	Reader io.ReadCloser
	Info   imagestore.Upload
}

// Manager coordinates image store side effects with database transactions.
type Manager struct {
	db     *gorm.DB
	images *imagestore.Store
	logger zerolog.Logger
}

func NewManager(db *gorm.DB, images *imagestore.Store, logger zerolog.Logger) *Manager {
	return &Manager{db: db, images: images, logger: logger}
}

// Images exposes the underlying store for URL resolution and serving.
func (m *Manager) Images() *imagestore.Store {
	return m.images
}

// DB exposes the managed connection for read paths.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// CreateWithFeatured stores the optional upload, then runs insert inside a
// transaction with the stored path. If the insert fails the just-stored file
// is compensating-deleted before the error returns, so a failed create never
// orphans a file. The database write is the last step: an aborted request
// can leave no row referencing an unstored file.
func (m *Manager) CreateWithFeatured(file *File, insert func(tx *gorm.DB, path string) error) (string, error) {
	path := ""
	if file != nil {
		var err error
		path, err = m.images.Save(file.Reader, file.Info)
		if err != nil {
			return "", err
		}
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		return insert(tx, path)
	})
	if err != nil {
		if path != "" {
			if delErr := m.images.Delete(path); delErr != nil {
				m.logger.Warn().Str("path", path).Err(delErr).
					Msg("failed to clean up file after aborted create")
			}
		}
		return "", wrapDB("create", err)
	}

	return path, nil
}

// ReplaceFeatured stores the new upload, commits the update with the new
// path, and only then deletes the old file. Never deletes before the commit:
// there is no window where the record points at a missing file. A nil file
// runs the update with the old path unchanged.
func (m *Manager) ReplaceFeatured(oldPath string, file *File, update func(tx *gorm.DB, path string) error) (string, error) {
	newPath := oldPath
	if file != nil {
		var err error
		newPath, err = m.images.Save(file.Reader, file.Info)
		if err != nil {
			return "", err
		}
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		return update(tx, newPath)
	})
	if err != nil {
		if file != nil {
			if delErr := m.images.Delete(newPath); delErr != nil {
				m.logger.Warn().Str("path", newPath).Err(delErr).
					Msg("failed to clean up file after aborted update")
			}
		}
		return "", wrapDB("update", err)
	}

	if file != nil && oldPath != "" && oldPath != newPath {
		if delErr := m.images.Delete(oldPath); delErr != nil {
			m.logger.Warn().Str("path", oldPath).Err(delErr).
				Msg("failed to delete replaced image")
		}
	}

	return newPath, nil
}

// DeleteRecord runs deleteRows in one transaction; deleteRows gathers every
// attachment path in the subtree and deletes the rows, so a failure partway
// rolls back all row deletions. File removal happens after commit and is
// best-effort: failures never roll anything back, and the paths that could
// not be removed are returned for the caller to report.
func (m *Manager) DeleteRecord(deleteRows func(tx *gorm.DB) ([]string, error)) ([]string, error) {
	var paths []string
	err := m.db.Transaction(func(tx *gorm.DB) error {
		var err error
		paths, err = deleteRows(tx)
		return err
	})
	if err != nil {
		return nil, wrapDB("delete", err)
	}

	var failed []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		if delErr := m.images.Delete(path); delErr != nil {
			failed = append(failed, path)
		}
	}
	if len(failed) > 0 {
		m.logger.Warn().Strs("paths", failed).
			Msg("record deleted but some files could not be removed")
	}
	return failed, nil
}

// wrapDB keeps application error kinds intact and tags everything else as a
// database failure.
func wrapDB(op string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.KindNotFound, "record not found", err)
	}
	return apperr.Wrap(apperr.KindDatabase, op+" failed", err)
}
