package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Draft is the persisted working order of a table whose session is open.
type Draft struct {
	ID         uuid.UUID   `gorm:"primaryKey"                                    json:"id"`
	TableID    int64       `gorm:"uniqueIndex;not null"                          json:"table_id"`
	OperatorID string      `gorm:"not null;default:''"                           json:"operator_id"`
	UpdatedAt  time.Time   `                                                     json:"updated_at"`
	Items      []DraftItem `gorm:"foreignKey:DraftID;constraint:OnDelete:CASCADE" json:"items"`
}

type DraftItem struct {
	ID        uuid.UUID       `gorm:"primaryKey"                  json:"id"`
	DraftID   uuid.UUID       `gorm:"index;not null"              json:"draft_id"`
	Position  int             `gorm:"not null"                    json:"position"`
	ProductID *int64          `                                   json:"product_id"`
	Name      string          `gorm:"not null"                    json:"name"`
	Quantity  int             `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null"       json:"unit_price"`
	Category  string          `gorm:"not null"                    json:"category"`
}

func (d *Draft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (Draft) TableName() string {
	return "order_drafts"
}

func (i *DraftItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (DraftItem) TableName() string {
	return "order_draft_items"
}
