// Package memory 进程内偏好存储，用于未配置数据库与 Redis 的场景以及测试
package memory

import (
	"context"
	"sync"
)

type PreferenceStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{values: make(map[string]string)}
}

func (s *PreferenceStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *PreferenceStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *PreferenceStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
