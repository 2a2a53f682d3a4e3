// Package storage хранит документы проектов на файловой системе.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrInvalidFileName = errors.New("invalid file name")

// Upload - загружаемый файл
type Upload struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// DocumentStore сохраняет документы проекта и возвращает имя сохранённого файла
type DocumentStore interface {
	Save(ctx context.Context, projectID uuid.UUID, upload Upload) (string, error)
}

type fileSystemStore struct {
	root string
}

// NewFileSystemStore создаёт хранилище с корнем root; документы кладутся в root/<projectID>/
func NewFileSystemStore(root string) DocumentStore {
	return &fileSystemStore{root: root}
}

func (s *fileSystemStore) Save(ctx context.Context, projectID uuid.UUID, upload Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(filepath.Clean("/" + upload.Name))
	if name == "/" || name == "." {
		return "", ErrInvalidFileName
	}

	dir := filepath.Join(s.root, projectID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := upload.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %q: %w", upload.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file %q: %w", name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to write file %q: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to write file %q: %w", name, err)
	}

	return name, nil
}
