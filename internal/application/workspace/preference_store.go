package workspace

import (
	"context"

	"writemaster-api/internal/domain/entity"
	"writemaster-api/internal/domain/repository"
)

type repositoryStore struct {
	repo repository.PreferenceRepository
}

// NewRepositoryStore 把偏好仓储适配为 PreferenceStore
func NewRepositoryStore(repo repository.PreferenceRepository) PreferenceStore {
	return &repositoryStore{repo: repo}
}

func (s *repositoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	pref, err := s.repo.Get(ctx, key)
	if err != nil || pref == nil {
		return "", false, err
	}
	return pref.Value, true, nil
}

func (s *repositoryStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Upsert(ctx, &entity.Preference{Key: key, Value: value})
}
