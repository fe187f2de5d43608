package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/models"
)

// DefaultUpsertChunk is the batch size of one insert-or-update statement.
const DefaultUpsertChunk = 200

// POSClientRepository stores POS merchants. The POS book is shared by the whole team.
type POSClientRepository struct {
	db *gorm.DB
}

func (r *POSClientRepository) List(ctx context.Context) ([]models.POSClient, error) {
	var out []models.POSClient
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *POSClientRepository) Get(ctx context.Context, id string) (*models.POSClient, error) {
	var p models.POSClient
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *POSClientRepository) Create(ctx context.Context, p *models.POSClient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *POSClientRepository) Update(ctx context.Context, p *models.POSClient) error {
	res := r.db.WithContext(ctx).
		Model(&models.POSClient{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"client_code": p.ClientCode,
			"client_name": p.ClientName,
			"department":  p.Department,
			"phone":       p.Phone,
			"status":      p.Status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *POSClientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.POSClient{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("pos_client_id = ?", id).Delete(&models.POSCallLog{}).Error; err != nil {
			return err
		}
		return tx.Where("pos_client_id = ?", id).Delete(&models.POSClientNote{}).Error
	})
}

func (r *POSClientRepository) ListCreatedBetween(ctx context.Context, b Bounds) ([]models.POSClient, error) {
	var out []models.POSClient
	err := b.apply(r.db.WithContext(ctx), "created_at").Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *POSClientRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.POSClient{}).Count(&n).Error
	return n, err
}

// UpsertResult counts distinct client codes.
type UpsertResult struct {
	Upserted int
	Failed   int
}

// Upsert inserts records or, when the client code already exists, updates its
// name, department and phone. Duplicate codes within recs collapse to the last
// one. Each chunk is its own statement: a failing chunk is counted, not rolled
// back with the others.
func (r *POSClientRepository) Upsert(ctx context.Context, recs []models.POSClient, chunk int) UpsertResult {
	if chunk <= 0 {
		chunk = DefaultUpsertChunk
	}

	last := make(map[string]int, len(recs))
	for i, rec := range recs {
		last[rec.ClientCode] = i
	}
	deduped := make([]models.POSClient, 0, len(last))
	for i, rec := range recs {
		if last[rec.ClientCode] == i {
			deduped = append(deduped, rec)
		}
	}

	var res UpsertResult
	for start := 0; start < len(deduped); start += chunk {
		end := min(start+chunk, len(deduped))
		batch := deduped[start:end]
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "client_code"}},
				DoUpdates: clause.AssignmentColumns([]string{"client_name", "department", "phone", "updated_at"}),
			}).
			Create(&batch).Error
		if err != nil {
			logger.Errorw("pos upsert chunk failed", "from", start, "size", len(batch), "error", err)
			res.Failed += len(batch)
			continue
		}
		res.Upserted += len(batch)
	}
	return res
}
