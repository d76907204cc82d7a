package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileRepository хранит каждую коллекцию в отдельном JSON-файле внутри каталога.
type FileRepository struct {
	dir string
}

// NewFileRepository создаёт файловое хранилище, при необходимости создавая каталог.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

// Path возвращает путь к файлу коллекции.
func (r *FileRepository) Path(name string) string {
	return filepath.Join(r.dir, name+".json")
}

// Load читает содержимое коллекции. Пустой файл считается пустой коллекцией.
func (r *FileRepository) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("read collection %s: %w", name, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return emptyCollection, nil
	}
	return data, nil
}

// Save перезаписывает коллекцию целиком: данные пишутся во временный файл, который затем
// переименовывается поверх целевого, поэтому частично записанный файл никогда не виден.
func (r *FileRepository) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.Path(name)); err != nil {
		return fmt.Errorf("replace collection %s: %w", name, err)
	}
	return nil
}

// Close ничего не делает: файловое хранилище не держит ресурсов.
func (r *FileRepository) Close() error {
	return nil
}
