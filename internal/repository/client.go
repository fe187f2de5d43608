package repository

import (
	"context"

	"gorm.io/gorm"

	"smart-fuel-crm/internal/models"
)

// ClientRepository stores fleet clients. Every query is scoped to the owning user.
type ClientRepository struct {
	db *gorm.DB
}

func (r *ClientRepository) List(ctx context.Context, userID string) ([]models.Client, error) {
	var out []models.Client
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *ClientRepository) Get(ctx context.Context, userID, id string) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Update overwrites the editable columns, nulls included.
func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
		Updates(map[string]any{
			"company_name":   c.CompanyName,
			"phone":          c.Phone,
			"email":          c.Email,
			"contact_person": c.ContactPerson,
			"number_of_cars": c.NumberOfCars,
			"fuel_type":      c.FuelType,
			"status":         c.Status,
			"address":        c.Address,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the client with its follow-ups and notes.
func (r *ClientRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.FollowUp{}).Error; err != nil {
			return err
		}
		return tx.Where("client_id = ?", id).Delete(&models.ClientNote{}).Error
	})
}

// ListCreatedBetween returns the user's clients created within b.
func (r *ClientRepository) ListCreatedBetween(ctx context.Context, userID string, b Bounds) ([]models.Client, error) {
	var out []models.Client
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	err := b.apply(q, "created_at").Order("created_at DESC").Find(&out).Error
	return out, err
}
