package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aig-studio/artist-image-generator/model"
)

// memStore is an in-memory ConfigStore.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", model.ErrOptionNotFound
	}
	return v, nil
}

func (s *memStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memStore) LoadSettings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	raw, err := s.Get(ctx, model.OptionName)
	if err != nil {
		return settings, nil
	}
	err = json.Unmarshal([]byte(raw), &settings)
	return settings, err
}

func (s *memStore) SaveSettings(ctx context.Context, settings model.Settings) error {
	raw, _ := json.Marshal(settings)
	return s.Set(ctx, model.OptionName, string(raw))
}
