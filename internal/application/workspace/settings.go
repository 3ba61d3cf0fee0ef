package workspace

import (
	"context"
	"encoding/json"
	"fmt"

	"writemaster-api/internal/workflow/catalog"
	"writemaster-api/pkg/logger"
)

// 持久化键名
const (
	KeyAPIKey  = "writer-api-key"
	KeyFormats = "writer-formats"
	KeyStyle   = "writer-style"
	KeyTone    = "writer-tone"
)

// PreferenceStore 偏好设置持久化端口
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Settings 会话偏好
type Settings struct {
	APIKey  string   `json:"-"`
	Formats []string `json:"formats"`
	StyleID string   `json:"style"`
	ToneID  string   `json:"tone,omitempty"`
}

// DefaultSettings 缺省偏好：单一默认格式、默认风格、无语气
func DefaultSettings() Settings {
	return Settings{
		Formats: []string{catalog.DefaultFormatID},
		StyleID: catalog.DefaultStyleID,
	}
}

func (s Settings) clone() Settings {
	s.Formats = append([]string(nil), s.Formats...)
	return s
}

// HasFormat 是否已选中格式
func (s Settings) HasFormat(id string) bool {
	for _, f := range s.Formats {
		if f == id {
			return true
		}
	}
	return false
}

// LoadSettings 从存储读取偏好，缺失或损坏的键回退默认值
func LoadSettings(ctx context.Context, store PreferenceStore) (Settings, error) {
	s := DefaultSettings()
	if store == nil {
		return s, nil
	}

	if v, ok, err := store.Get(ctx, KeyAPIKey); err != nil {
		return s, fmt.Errorf("load %s: %w", KeyAPIKey, err)
	} else if ok {
		s.APIKey = v
	}

	if v, ok, err := store.Get(ctx, KeyFormats); err != nil {
		return s, fmt.Errorf("load %s: %w", KeyFormats, err)
	} else if ok {
		var formats []string
		if err := json.Unmarshal([]byte(v), &formats); err != nil {
			logger.Warn(ctx, "ignoring malformed stored formats", "error", err.Error())
		} else if len(formats) > 0 {
			s.Formats = formats
		}
	}

	if v, ok, err := store.Get(ctx, KeyStyle); err != nil {
		return s, fmt.Errorf("load %s: %w", KeyStyle, err)
	} else if ok && v != "" {
		s.StyleID = v
	}

	if v, ok, err := store.Get(ctx, KeyTone); err != nil {
		return s, fmt.Errorf("load %s: %w", KeyTone, err)
	} else if ok {
		s.ToneID = v
	}

	return s, nil
}

func encodeFormats(formats []string) string {
	b, _ := json.Marshal(formats)
	return string(b)
}
