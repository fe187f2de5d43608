package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-fuel-crm/internal/models"
)

// TemplateRepository stores the one template per user and channel.
type TemplateRepository struct {
	db *gorm.DB
}

// Get returns the user's template for channel with its attachments.
func (r *TemplateRepository) Get(ctx context.Context, userID, channel string) (*models.MessageTemplate, error) {
	var t models.MessageTemplate
	err := r.db.WithContext(ctx).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&t, "user_id = ? AND type = ?", userID, channel).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// Upsert saves subject, body and cc as a whole. Attachments are untouched.
func (r *TemplateRepository) Upsert(ctx context.Context, t *models.MessageTemplate) (*models.MessageTemplate, error) {
	row := models.MessageTemplate{
		UserID:  t.UserID,
		Type:    t.Type,
		Subject: t.Subject,
		Body:    t.Body,
		CC:      t.CC,
	}
	err := r.db.WithContext(ctx).
		Omit("Attachments").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"subject", "body", "cc", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, t.UserID, t.Type)
}

// Ensure returns the user's template for channel, creating an empty one if needed.
func (r *TemplateRepository) Ensure(ctx context.Context, userID, channel string) (*models.MessageTemplate, error) {
	t, err := r.Get(ctx, userID, channel)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return r.Upsert(ctx, &models.MessageTemplate{UserID: userID, Type: channel})
}

func (r *TemplateRepository) AddAttachment(ctx context.Context, a *models.TemplateAttachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *TemplateRepository) GetAttachment(ctx context.Context, userID, id string) (*models.TemplateAttachment, error) {
	var a models.TemplateAttachment
	if err := r.db.WithContext(ctx).First(&a, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *TemplateRepository) DeleteAttachment(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.TemplateAttachment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
