package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cha0jun/leavey/internal/config"

	"go.uber.org/zap"
)

// ErrObjectNotFound is returned by Storage.Open when the object is gone.
var ErrObjectNotFound = errors.New("stored object not found")

// Storage keeps document bodies. Put returns the location to persist; Open
// and Remove take that location back.
type Storage interface {
	Put(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	Remove(ctx context.Context, location string) error
}

// NewStorage builds the configured driver.
func NewStorage(cfg config.UploadConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.Dir)
	case "cloudinary":
		return NewCloudinaryStorage(CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported upload driver %q", cfg.Driver)
	}
}

// LocalStorage writes files under one directory. Locations are bare file
// names so the directory can move between deployments.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) path(location string) string {
	return filepath.Join(s.dir, filepath.Base(location))
}

func (s *LocalStorage) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = filepath.Base(name)
	f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(s.path(name))
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}

func (s *LocalStorage) Open(_ context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(location))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return f, err
}

func (s *LocalStorage) Remove(_ context.Context, location string) error {
	err := os.Remove(s.path(location))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
