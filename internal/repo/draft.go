package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/models"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&models.Draft{}, &models.DraftItem{})
}

// SaveDraft replaces the stored items of the table's draft.
func (r *GormRepo) SaveDraft(ctx context.Context, tableID int64, operatorID string, items []order.LineItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var draft models.Draft
		err := tx.Where("table_id = ?", tableID).First(&draft).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			draft = models.Draft{TableID: tableID, OperatorID: operatorID}
			if err := tx.Create(&draft).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&draft).Update("operator_id", operatorID).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("draft_id = ?", draft.ID).Delete(&models.DraftItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		rows := make([]models.DraftItem, 0, len(items))
		for i, it := range items {
			rows = append(rows, models.DraftItem{
				DraftID:   draft.ID,
				Position:  i,
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Category:  it.Category.String(),
			})
		}
		return tx.Create(&rows).Error
	})
}

// LoadDraft returns the stored items for a table, or domain.ErrNotFound.
func (r *GormRepo) LoadDraft(ctx context.Context, tableID int64) ([]order.LineItem, error) {
	var draft models.Draft
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("table_id = ?", tableID).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("draft for table %d: %w", tableID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(draft.Items))
	for _, row := range draft.Items {
		cat, err := domain.ParseCategory(row.Category)
		if err != nil {
			return nil, fmt.Errorf("draft item %s: %w", row.ID, err)
		}
		items = append(items, order.LineItem{
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			Category:  cat,
		})
	}
	return items, nil
}

func (r *GormRepo) DeleteDraft(ctx context.Context, tableID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var draft models.Draft
		err := tx.Where("table_id = ?", tableID).First(&draft).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("draft_id = ?", draft.ID).Delete(&models.DraftItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&draft).Error
	})
}
