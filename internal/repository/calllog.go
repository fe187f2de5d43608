package repository

import (
	"context"

	"gorm.io/gorm"

	"smart-fuel-crm/internal/models"
)

// CallLogRepository stores the append-only POS call history.
type CallLogRepository struct {
	db *gorm.DB
}

func (r *CallLogRepository) ListForClient(ctx context.Context, posClientID string) ([]models.POSCallLog, error) {
	if err := posClientExists(r.db.WithContext(ctx), posClientID); err != nil {
		return nil, err
	}
	var out []models.POSCallLog
	err := r.db.WithContext(ctx).
		Where("pos_client_id = ?", posClientID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListAll returns every call log with its POS client, newest first.
func (r *CallLogRepository) ListAll(ctx context.Context) ([]models.POSCallLog, error) {
	var out []models.POSCallLog
	err := r.db.WithContext(ctx).Preload("POSClient").Order("created_at DESC").Find(&out).Error
	return out, err
}

// AddAndUpdateClient inserts l and sets the POS client's status to l.Status in
// one transaction.
func (r *CallLogRepository) AddAndUpdateClient(ctx context.Context, l *models.POSCallLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := posClientExists(tx, l.POSClientID); err != nil {
			return err
		}
		if err := tx.Omit("POSClient").Create(l).Error; err != nil {
			return err
		}
		return tx.Model(&models.POSClient{}).
			Where("id = ?", l.POSClientID).
			Update("status", l.Status).Error
	})
}

func (r *CallLogRepository) CountBetween(ctx context.Context, b Bounds) (int64, error) {
	var n int64
	err := b.apply(r.db.WithContext(ctx).Model(&models.POSCallLog{}), "created_at").Count(&n).Error
	return n, err
}

func posClientExists(db *gorm.DB, id string) error {
	var n int64
	if err := db.Model(&models.POSClient{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
