package repository

import (
	"context"

	"writemaster-api/internal/domain/entity"
)

// PreferenceRepository 偏好设置存储；Get 在键不存在时返回 (nil, nil)
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (*entity.Preference, error)
	Upsert(ctx context.Context, pref *entity.Preference) error
	Delete(ctx context.Context, key string) error
}
