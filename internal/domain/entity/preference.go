package entity

import "time"

// Preference 会话偏好键值对
type Preference struct {
	Key       string    `json:"key" gorm:"column:pref_key;type:varchar(64);primaryKey"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Preference) TableName() string {
	return "preferences"
}
