package imagestore

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailpost/tourcms/pkg/apperr"
)

func newTestStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	store, err := New(t.TempDir(), "https://cdn.example.com", maxBytes, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestSaveAndDelete(t *testing.T) {
	store := newTestStore(t, 0)
	content := "not really a png, but the store does not sniff"

	path, err := store.Save(strings.NewReader(content), Upload{
		OriginalName: "Araku Valley.png",
		ContentType:  "image/png",
		Size:         int64(len(content)),
	})
	require.NoError(t, err)

	assert.True(t, store.Exists(path))
	assert.True(t, strings.HasSuffix(path, "-araku-valley.png"), "got %q", path)
	assert.False(t, strings.Contains(path, "/"), "path key must be a bare filename, got %q", path)

	require.NoError(t, store.Delete(path))
	assert.False(t, store.Exists(path))
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.Save(strings.NewReader("%PDF-1.4"), Upload{
		OriginalName: "brochure.pdf",
		ContentType:  "application/pdf",
		Size:         8,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnsupportedMedia))
}

func TestSaveRejectsOversizedUpload(t *testing.T) {
	store := newTestStore(t, 16)

	t.Run("declared size too large", func(t *testing.T) {
		_, err := store.Save(strings.NewReader("x"), Upload{
			OriginalName: "big.jpg",
			ContentType:  "image/jpeg",
			Size:         1 << 20,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindPayloadTooLarge))
	})

	t.Run("actual size exceeds declared", func(t *testing.T) {
		body := strings.Repeat("x", 64)
		_, err := store.Save(strings.NewReader(body), Upload{
			OriginalName: "liar.jpg",
			ContentType:  "image/jpeg",
			Size:         8,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindPayloadTooLarge))
	})
}

func TestDeleteMissingFileSucceeds(t *testing.T) {
	store := newTestStore(t, 0)
	assert.NoError(t, store.Delete("1700000000000-abcd1234-gone.jpg"))
	assert.NoError(t, store.Delete(""))
}

func TestAbsRejectsTraversal(t *testing.T) {
	store := newTestStore(t, 0)

	tests := []string{
		"../etc/passwd",
		"a/../../b.jpg",
		"/etc/passwd",
		"  ",
	}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := store.Abs(path)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindStorage))
		})
	}
}

func TestPublicURL(t *testing.T) {
	store := newTestStore(t, 0)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"bare key", "1-abcd-hill.jpg", "https://cdn.example.com/uploads/1-abcd-hill.jpg"},
		{"legacy uploads prefix", "uploads/1-abcd-hill.jpg", "https://cdn.example.com/uploads/1-abcd-hill.jpg"},
		{"absolute url passthrough", "https://elsewhere.example.com/x.jpg", "https://elsewhere.example.com/x.jpg"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.PublicURL(tt.path))
		})
	}

	// Applying PublicURL to its own output must not double-prefix.
	once := store.PublicURL("1-abcd-hill.jpg")
	assert.Equal(t, once, store.PublicURL(once))
}

func TestGenerateNameSanitizesBase(t *testing.T) {
	name := generateName("Weird  NAME!! (final).v2.PNG", ".png")
	assert.True(t, strings.HasSuffix(name, "-weird--name-finalv2.png"), "got %q", name)
}
