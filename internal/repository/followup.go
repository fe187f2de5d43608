package repository

import (
	"context"

	"gorm.io/gorm"

	"smart-fuel-crm/internal/models"
)

// FollowUpRepository stores the append-only fleet contact history.
type FollowUpRepository struct {
	db *gorm.DB
}

func (r *FollowUpRepository) ListForClient(ctx context.Context, userID, clientID string) ([]models.FollowUp, error) {
	if err := ownsClient(r.db.WithContext(ctx), userID, clientID); err != nil {
		return nil, err
	}
	var out []models.FollowUp
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListAll returns the user's follow-ups with their client, newest first.
func (r *FollowUpRepository) ListAll(ctx context.Context, userID string) ([]models.FollowUp, error) {
	var out []models.FollowUp
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// AddAndUpdateClient inserts f and sets the client's status to f.Status in one
// transaction. The client must belong to f.UserID.
func (r *FollowUpRepository) AddAndUpdateClient(ctx context.Context, f *models.FollowUp) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownsClient(tx, f.UserID, f.ClientID); err != nil {
			return err
		}
		if err := tx.Omit("Client").Create(f).Error; err != nil {
			return err
		}
		return tx.Model(&models.Client{}).
			Where("id = ?", f.ClientID).
			Update("status", f.Status).Error
	})
}

// Upcoming returns the user's follow-ups scheduled on or after today (YYYY-MM-DD),
// soonest first. Follow-ups whose client is gone are skipped.
func (r *FollowUpRepository) Upcoming(ctx context.Context, userID, today string) ([]models.FollowUp, error) {
	var rows []models.FollowUp
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("user_id = ? AND next_follow_up_date IS NOT NULL AND next_follow_up_date >= ?", userID, today).
		Order("next_follow_up_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, f := range rows {
		if f.Client != nil {
			out = append(out, f)
		}
	}
	return out, nil
}

// ClearNextDates nulls the schedule of the given follow-ups owned by userID and
// returns how many rows changed.
func (r *FollowUpRepository) ClearNextDates(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.FollowUp{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("next_follow_up_date", nil)
	return int(res.RowsAffected), res.Error
}

// DueOn returns every user's follow-ups scheduled exactly on date, with client.
func (r *FollowUpRepository) DueOn(ctx context.Context, date string) ([]models.FollowUp, error) {
	var out []models.FollowUp
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("next_follow_up_date = ?", date).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *FollowUpRepository) ClearNextDate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.FollowUp{}).
		Where("id = ?", id).
		Update("next_follow_up_date", nil).Error
}

func (r *FollowUpRepository) CountBetween(ctx context.Context, userID string, b Bounds) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&models.FollowUp{}).Where("user_id = ?", userID)
	err := b.apply(q, "created_at").Count(&n).Error
	return n, err
}

func ownsClient(db *gorm.DB, userID, clientID string) error {
	var n int64
	err := db.Model(&models.Client{}).Where("id = ? AND user_id = ?", clientID, userID).Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
