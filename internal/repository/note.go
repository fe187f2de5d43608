package repository

import (
	"context"

	"gorm.io/gorm"

	"smart-fuel-crm/internal/models"
)

// NoteRepository stores free-text notes for fleet and POS clients.
type NoteRepository struct {
	db *gorm.DB
}

func (r *NoteRepository) ListForClient(ctx context.Context, userID, clientID string) ([]models.ClientNote, error) {
	if err := ownsClient(r.db.WithContext(ctx), userID, clientID); err != nil {
		return nil, err
	}
	var out []models.ClientNote
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *NoteRepository) AddForClient(ctx context.Context, n *models.ClientNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownsClient(tx, n.UserID, n.ClientID); err != nil {
			return err
		}
		return tx.Omit("Client").Create(n).Error
	})
}

func (r *NoteRepository) ListForPOSClient(ctx context.Context, posClientID string) ([]models.POSClientNote, error) {
	if err := posClientExists(r.db.WithContext(ctx), posClientID); err != nil {
		return nil, err
	}
	var out []models.POSClientNote
	err := r.db.WithContext(ctx).Where("pos_client_id = ?", posClientID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *NoteRepository) AddForPOSClient(ctx context.Context, n *models.POSClientNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := posClientExists(tx, n.POSClientID); err != nil {
			return err
		}
		return tx.Omit("POSClient").Create(n).Error
	})
}
