// Package keyring 把 API Key 存入系统钥匙串，其余偏好交给下层存储
package keyring

import (
	"context"
	"errors"

	"github.com/zalando/go-keyring"

	apperrors "writemaster-api/pkg/errors"
)

// Backend 下层偏好存储
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store 对指定键走系统钥匙串
type Store struct {
	service   string
	secretKey string
	next      Backend
}

// NewStore 创建钥匙串存储；secretKey 之外的键转发给 next
func NewStore(service, secretKey string, next Backend) *Store {
	return &Store{service: service, secretKey: secretKey, next: next}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key != s.secretKey {
		return s.next.Get(ctx, key)
	}
	val, err := keyring.Get(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Wrap(err, apperrors.CodeKeyringError, "keyring get failed")
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if key != s.secretKey {
		return s.next.Set(ctx, key, value)
	}
	if value == "" {
		err := keyring.Delete(s.service, key)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return apperrors.Wrap(err, apperrors.CodeKeyringError, "keyring delete failed")
		}
		return nil
	}
	if err := keyring.Set(s.service, key, value); err != nil {
		return apperrors.Wrap(err, apperrors.CodeKeyringError, "keyring set failed")
	}
	return nil
}
