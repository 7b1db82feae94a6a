package document

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cha0jun/leavey/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	loc, err := s.Put(ctx, "../../etc/abc.pdf", strings.NewReader("body"))
	require.NoError(t, err)
	assert.Equal(t, "abc.pdf", loc)
	_, err = os.Stat(filepath.Join(dir, "abc.pdf"))
	require.NoError(t, err)

	_, err = s.Put(ctx, "abc.pdf", strings.NewReader("again"))
	assert.Error(t, err, "existing objects are never overwritten")

	rc, err := s.Open(ctx, loc)
	require.NoError(t, err)
	got, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "body", string(got))

	require.NoError(t, s.Remove(ctx, loc))
	require.NoError(t, s.Remove(ctx, loc))
	_, err = s.Open(ctx, loc)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNewStorage(t *testing.T) {
	s, err := NewStorage(config.UploadConfig{Driver: "local", Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorage(config.UploadConfig{Driver: "cloudinary"}, nil)
	assert.Error(t, err, "credentials are required")

	_, err = NewStorage(config.UploadConfig{Driver: "s3"}, nil)
	assert.Error(t, err)
}

func TestPublicIDFromURL(t *testing.T) {
	assert.Equal(t, "leavey/abc", publicIDFromURL("https://res.cloudinary.com/demo/raw/upload/v1712/leavey/abc.pdf"))
	assert.Equal(t, "abc", publicIDFromURL("https://res.cloudinary.com/demo/raw/upload/abc"))
	assert.Empty(t, publicIDFromURL("https://example.com/file.pdf"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "note.pdf", sanitizeFilename("note.pdf", ".pdf"))
	assert.Equal(t, "photo.jpeg", sanitizeFilename("photo.jpeg", ".jpg"))
	assert.Equal(t, "scan.png", sanitizeFilename("scan", ".png"))
	assert.Equal(t, "a_b.pdf", sanitizeFilename(`a"b.pdf`, ".pdf"))
	assert.Equal(t, "document.pdf", sanitizeFilename("  ", ".pdf"))
}
