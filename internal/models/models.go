package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the storage format of calendar dates such as next_follow_up_date.
const DateLayout = "2006-01-02"

const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// Profile is an authenticated user of the CRM.
type Profile struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName     *string   `gorm:"type:varchar(255)" json:"full_name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}

// Client is a fleet fuel services account owned by one user.
type Client struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	CompanyName   string    `gorm:"type:varchar(255);not null" json:"company_name"`
	Phone         *string   `gorm:"type:varchar(50)" json:"phone"`
	Email         *string   `gorm:"type:varchar(255)" json:"email"`
	ContactPerson *string   `gorm:"type:varchar(255)" json:"contact_person"`
	NumberOfCars  *int      `json:"number_of_cars"`
	FuelType      *string   `gorm:"type:varchar(50)" json:"fuel_type"`
	Status        *string   `gorm:"type:varchar(100)" json:"status"`
	Address       *string   `gorm:"type:text" json:"address"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	newID(&c.ID)
	return nil
}

// FollowUp is an append-only record of a contact attempt with a fleet client.
type FollowUp struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ClientID         string    `gorm:"type:varchar(36);index;not null" json:"client_id"`
	UserID           string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Feedback         *string   `gorm:"type:text" json:"feedback"`
	Status           string    `gorm:"type:varchar(100);not null" json:"status"`
	NextFollowUpDate *string   `gorm:"type:varchar(10);index" json:"next_follow_up_date"`
	UserFullName     string    `gorm:"type:varchar(255)" json:"user_full_name"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	Client           *Client   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;" json:"client,omitempty"`
}

func (FollowUp) TableName() string {
	return "follow_ups"
}

func (f *FollowUp) BeforeCreate(*gorm.DB) error {
	newID(&f.ID)
	return nil
}

// ClientNote is a free-text annotation on a fleet client, independent of follow-ups.
type ClientNote struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ClientID   string    `gorm:"type:varchar(36);index;not null" json:"client_id"`
	UserID     string    `gorm:"type:varchar(36);not null" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	AuthorName string    `gorm:"type:varchar(255)" json:"author_name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	Client     *Client   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (ClientNote) TableName() string {
	return "client_notes"
}

func (n *ClientNote) BeforeCreate(*gorm.DB) error {
	newID(&n.ID)
	return nil
}

// POSClient is a point-of-sale merchant prospect identified by its client code.
type POSClient struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string    `gorm:"type:varchar(36);index" json:"user_id"`
	ClientCode string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"client_code"`
	ClientName string    `gorm:"type:varchar(255);not null" json:"client_name"`
	Department *string   `gorm:"type:varchar(100)" json:"department"`
	Phone      *string   `gorm:"type:varchar(50)" json:"phone"`
	Status     *string   `gorm:"type:varchar(100)" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (POSClient) TableName() string {
	return "pos_clients"
}

func (p *POSClient) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}

// POSCallLog is an append-only record of a call to a POS client.
type POSCallLog struct {
	ID               string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID           string     `gorm:"type:varchar(36);index;not null" json:"user_id"`
	POSClientID      string     `gorm:"column:pos_client_id;type:varchar(36);index;not null" json:"pos_client_id"`
	CallDate         string     `gorm:"type:varchar(10)" json:"call_date"`
	CallSummary      *string    `gorm:"type:text" json:"call_summary"`
	Feedback         *string    `gorm:"type:text" json:"feedback"`
	Status           string     `gorm:"type:varchar(100);not null" json:"status"`
	Notes            *string    `gorm:"type:text" json:"notes"`
	NextFollowUpDate *string    `gorm:"type:varchar(10);index" json:"next_follow_up_date"`
	UserFullName     string     `gorm:"type:varchar(255)" json:"user_full_name"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	POSClient        *POSClient `gorm:"foreignKey:POSClientID;constraint:OnDelete:CASCADE;" json:"pos_client,omitempty"`
}

func (POSCallLog) TableName() string {
	return "pos_call_logs"
}

func (l *POSCallLog) BeforeCreate(*gorm.DB) error {
	newID(&l.ID)
	return nil
}

type POSClientNote struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	POSClientID string     `gorm:"column:pos_client_id;type:varchar(36);index;not null" json:"pos_client_id"`
	UserID      string     `gorm:"type:varchar(36);not null" json:"user_id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	AuthorName  string     `gorm:"type:varchar(255)" json:"author_name"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	POSClient   *POSClient `gorm:"foreignKey:POSClientID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (POSClientNote) TableName() string {
	return "pos_client_notes"
}

func (n *POSClientNote) BeforeCreate(*gorm.DB) error {
	newID(&n.ID)
	return nil
}

// MessageTemplate is the single per-user template for one channel.
type MessageTemplate struct {
	ID          string               `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string               `gorm:"type:varchar(36);not null;uniqueIndex:idx_template_user_type" json:"user_id"`
	Type        string               `gorm:"type:varchar(20);not null;uniqueIndex:idx_template_user_type" json:"type"`
	Subject     *string              `gorm:"type:text" json:"subject"`
	Body        *string              `gorm:"type:text" json:"body"`
	CC          *string              `gorm:"column:cc;type:varchar(255)" json:"cc"`
	Attachments []TemplateAttachment `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE;" json:"attachments"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MessageTemplate) TableName() string {
	return "message_templates"
}

func (t *MessageTemplate) BeforeCreate(*gorm.DB) error {
	newID(&t.ID)
	return nil
}

// TemplateAttachment points at an object in storage; it travels as a download link.
type TemplateAttachment struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TemplateID string    `gorm:"type:varchar(36);index;not null" json:"template_id"`
	UserID     string    `gorm:"type:varchar(36);not null" json:"user_id"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	FilePath   string    `gorm:"type:text;not null" json:"file_path"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TemplateAttachment) TableName() string {
	return "template_attachments"
}

func (a *TemplateAttachment) BeforeCreate(*gorm.DB) error {
	newID(&a.ID)
	return nil
}

// All lists every model for auto-migration.
func All() []any {
	return []any{
		&Profile{},
		&Client{},
		&FollowUp{},
		&ClientNote{},
		&POSClient{},
		&POSCallLog{},
		&POSClientNote{},
		&MessageTemplate{},
		&TemplateAttachment{},
	}
}
