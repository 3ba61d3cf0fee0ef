package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"writemaster-api/internal/domain/entity"
)

type PreferenceRepository struct {
	client *Client
}

func NewPreferenceRepository(client *Client) *PreferenceRepository {
	return &PreferenceRepository{client: client}
}

func (r *PreferenceRepository) Get(ctx context.Context, key string) (*entity.Preference, error) {
	ctx, span := tracer.Start(ctx, "database.PreferenceRepository.Get")
	defer span.End()

	var pref entity.Preference
	err := getDB(ctx, r.client.db).Where("pref_key = ?", key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return &pref, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, pref *entity.Preference) error {
	ctx, span := tracer.Start(ctx, "database.PreferenceRepository.Upsert")
	defer span.End()

	err := getDB(ctx, r.client.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert preference: %w", err)
	}
	return nil
}

func (r *PreferenceRepository) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "database.PreferenceRepository.Delete")
	defer span.End()

	if err := getDB(ctx, r.client.db).Where("pref_key = ?", key).Delete(&entity.Preference{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}
