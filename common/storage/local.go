package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir string, baseURL string) (*LocalStorage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: abs, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStorage) Name() string {
	return "local"
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) resolve(key string) (string, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if !strings.HasPrefix(full, s.dir+string(os.PathSeparator)) {
		return "", errors.New("invalid storage key: " + key)
	}
	return full, nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	full, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}
	if err = os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	return s.baseURL + "/" + filepath.ToSlash(key), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
