// Package repository is the gorm-backed record store of the CRM.
package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Bounds limits a query to created_at in [Start, End]. A nil side is open.
type Bounds struct {
	Start *time.Time
	End   *time.Time
}

func (b Bounds) apply(q *gorm.DB, column string) *gorm.DB {
	if b.Start != nil {
		q = q.Where(column+" >= ?", b.Start.UTC())
	}
	if b.End != nil {
		q = q.Where(column+" <= ?", b.End.UTC())
	}
	return q
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Repositories groups every store so callers can be wired from one *gorm.DB.
type Repositories struct {
	Profiles   *ProfileRepository
	Clients    *ClientRepository
	FollowUps  *FollowUpRepository
	Notes      *NoteRepository
	POSClients *POSClientRepository
	CallLogs   *CallLogRepository
	Templates  *TemplateRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Profiles:   &ProfileRepository{db: db},
		Clients:    &ClientRepository{db: db},
		FollowUps:  &FollowUpRepository{db: db},
		Notes:      &NoteRepository{db: db},
		POSClients: &POSClientRepository{db: db},
		CallLogs:   &CallLogRepository{db: db},
		Templates:  &TemplateRepository{db: db},
	}
}
