package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/iiifas/internal/domain"
	"github.com/totegamma/iiifas/internal/infra/database/models"
	"github.com/totegamma/iiifas/internal/usecase"
)

// PostgresStore keeps events in the activities table. Expired rows are
// ignored on read and replaced on the next write.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var activity models.Activity
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Take(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "event " + key}
		}
		return nil, errors.Wrap(err, "PostgresStore.Get")
	}
	return activity.Value, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	activity := models.Activity{
		Key:   key,
		Value: value,
	}
	if ttl > 0 {
		expiresAt := time.Now().Add(ttl)
		activity.ExpiresAt = &expiresAt
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&activity).Error
	if err != nil {
		return errors.Wrap(err, "PostgresStore.Put")
	}
	return nil
}

var _ usecase.EventStore = (*PostgresStore)(nil)
