package record

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id int64) (*Record, error)
	ListRecent(ctx context.Context, limit int) ([]Summary, error)
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
	Migrate(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	return &rec, err
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]Summary, error) {
	var rows []Summary
	err := r.db.WithContext(ctx).
		Model(&Record{}).
		Select("id", "username", "timestamp").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	res := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&Record{})
	return res.RowsAffected, res.Error
}

// Migrate creates the records table and its timestamp index. Idempotent,
// runs on every process start.
func (r *repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Record{})
}
