package redis

import (
	"context"

	apperrors "writemaster-api/pkg/errors"
)

// PreferenceStore 把全部偏好保存在一个不过期的哈希里，字段名即偏好键
type PreferenceStore struct {
	client *Client
	key    string
}

func NewPreferenceStore(client *Client) *PreferenceStore {
	return &PreferenceStore{client: client, key: client.Key("prefs")}
}

func (s *PreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.HGet(ctx, s.key, key)
	if IsNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to get preference "+key)
	}
	return val, true, nil
}

func (s *PreferenceStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.key, key, value); err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to set preference "+key)
	}
	return nil
}

func (s *PreferenceStore) Delete(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.key, key); err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to delete preference "+key)
	}
	return nil
}
