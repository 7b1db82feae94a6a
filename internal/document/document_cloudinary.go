package document

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CloudinaryStorage keeps documents as raw Cloudinary assets. The location is
// the secure URL returned by the upload.
type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
	folder string
	http   *http.Client
	logger *zap.Logger
}

func NewCloudinaryStorage(cfg CloudinaryConfig, logger *zap.Logger) (*CloudinaryStorage, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	if logger == nil {
		logger = zap.L()
	}

	return &CloudinaryStorage{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		http:   http.DefaultClient,
		logger: logger.Named("document.cloudinary"),
	}, nil
}

func (s *CloudinaryStorage) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	result, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     strings.TrimSuffix(name, path.Ext(name)),
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload asset: %s", result.Error.Message)
	}

	s.logger.Info("document uploaded to cloudinary", zap.String("public_id", result.PublicID))
	return result.SecureURL, nil
}

func (s *CloudinaryStorage) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, ErrObjectNotFound
	case resp.StatusCode >= 300:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch asset: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *CloudinaryStorage) Remove(ctx context.Context, location string) error {
	publicID := publicIDFromURL(location)
	if publicID == "" {
		return nil
	}
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	return err
}

var versionSegment = regexp.MustCompile(`^v\d+/`)

// publicIDFromURL recovers "folder/name" from
// https://res.cloudinary.com/<cloud>/raw/upload/v123/folder/name.pdf.
func publicIDFromURL(u string) string {
	_, rest, ok := strings.Cut(u, "/upload/")
	if !ok {
		return ""
	}
	rest = versionSegment.ReplaceAllString(rest, "")
	return strings.TrimSuffix(rest, path.Ext(rest))
}
