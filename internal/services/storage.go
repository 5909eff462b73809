package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload folders, relative to the storage root.
const (
	FolderResumes         = "resumes"
	FolderAadharDocuments = "documents/aadhar"
	FolderPanDocuments    = "documents/pan"
)

// StorageService stores uploaded files under slash-separated names such as
// "resumes/<uuid>.pdf".
type StorageService interface {
	Init(ctx context.Context) error
	SaveFile(ctx context.Context, file *multipart.FileHeader, folder string, allowedExts []string) (string, error)
	// LocalPath returns a filesystem path for name. cleanup must always be called.
	LocalPath(ctx context.Context, name string) (string, func(), error)
	URL(name string) string
	DeleteFile(ctx context.Context, name string) error
}

type storageService struct {
	uploadPath string
	mediaURL   string
}

func NewStorageService(uploadPath, mediaURL string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		mediaURL:   strings.TrimRight(mediaURL, "/"),
	}
}

func (s *storageService) Init(ctx context.Context) error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveFile(ctx context.Context, file *multipart.FileHeader, folder string, allowedExts []string) (string, error) {
	name, err := newObjectName(file.Filename, folder, allowedExts)
	if err != nil {
		return "", err
	}

	filePath := s.filePath(name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory: %v", ErrStorage, err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create destination file: %v", ErrStorage, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%w: failed to save file: %v", ErrStorage, err)
	}

	return name, nil
}

func (s *storageService) LocalPath(ctx context.Context, name string) (string, func(), error) {
	return s.filePath(name), func() {}, nil
}

func (s *storageService) URL(name string) string {
	return s.mediaURL + "/" + name
}

func (s *storageService) DeleteFile(ctx context.Context, name string) error {
	if err := os.Remove(s.filePath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *storageService) filePath(name string) string {
	return filepath.Join(s.uploadPath, filepath.FromSlash(name))
}

// newObjectName validates the extension and returns "<folder>/<uuid><ext>".
func newObjectName(filename, folder string, allowedExts []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !hasExtension(allowedExts, ext) {
		return "", fmt.Errorf("%w: %q. Supported formats: %s",
			ErrUnsupportedFormat, ext, strings.Join(allowedExts, ", "))
	}

	return path.Join(folder, uuid.New().String()+ext), nil
}

func hasExtension(allowed []string, ext string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if a == ext {
			return true
		}
	}
	return false
}
