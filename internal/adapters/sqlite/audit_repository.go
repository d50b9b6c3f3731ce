package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

type dealAuditModel struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DealID         int64     `gorm:"column:deal_id;not null"`
	Action         string    `gorm:"column:action;not null"`
	PreviousStatus string    `gorm:"column:previous_status;not null"`
	NewStatus      string    `gorm:"column:new_status;not null"`
	At             time.Time `gorm:"column:at;not null"`
}

func (dealAuditModel) TableName() string {
	return "deal_audit"
}

type DealAuditRepository struct {
	db *gorm.DB
}

func NewDealAuditRepository(db *gorm.DB) *DealAuditRepository {
	return &DealAuditRepository{db: db}
}

func (r *DealAuditRepository) Log(ctx context.Context, entry domain.DealAuditEntry) error {
	model := dealAuditModel{
		DealID:         entry.DealID.Int64(),
		Action:         entry.Action,
		PreviousStatus: entry.PreviousStatus,
		NewStatus:      entry.NewStatus,
		At:             entry.At,
	}
	if model.At.IsZero() {
		model.At = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("insert deal audit entry: %w", err)
	}
	return nil
}

func (r *DealAuditRepository) List(ctx context.Context, filter domain.DealAuditFilter) ([]domain.DealAuditEntry, error) {
	query := r.db.WithContext(ctx).
		Model(&dealAuditModel{}).
		Where("deal_id = ?", filter.DealID.Int64())
	if filter.AfterID > 0 {
		query = query.Where("id > ?", filter.AfterID)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var models []dealAuditModel
	if err := query.Order("id ASC").Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list deal audit: %w", err)
	}

	entries := make([]domain.DealAuditEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, domain.DealAuditEntry{
			ID:             model.ID,
			DealID:         domain.DealID(model.DealID),
			Action:         model.Action,
			PreviousStatus: model.PreviousStatus,
			NewStatus:      model.NewStatus,
			At:             model.At,
		})
	}
	return entries, nil
}
