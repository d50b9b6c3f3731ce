package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

type dealModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UUID      string     `gorm:"column:uuid;not null"`
	AdID      int64      `gorm:"column:ad_id;not null"`
	BuyerID   int64      `gorm:"column:buyer_id;not null"`
	SellerID  int64      `gorm:"column:seller_id;not null"`
	Price     string     `gorm:"column:price;not null"`
	Status    string     `gorm:"column:status;not null"`
	Notes     *string    `gorm:"column:notes"`
	OnChainID *string    `gorm:"column:on_chain_id"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	SignedAt  *time.Time `gorm:"column:signed_at"`
	Version   int64      `gorm:"column:version;not null"`
}

func (dealModel) TableName() string {
	return "deals"
}

// DealRepository maps the Deal aggregate to its persisted row. The aggregate
// never sees gorm; translation lives entirely here.
type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

// Save upserts the deal by id. Updates carry an optimistic version guard: a
// row changed by another writer since this aggregate was loaded makes Save
// return domain.ErrStaleDeal.
func (r *DealRepository) Save(ctx context.Context, deal *domain.Deal) error {
	model := toModel(deal)

	if deal.Version() == 0 {
		model.Version = 1
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("insert deal: %w", err)
		}
		return nil
	}

	model.Version = deal.Version() + 1
	res := r.db.WithContext(ctx).
		Model(&dealModel{}).
		Where("id = ? AND version = ?", deal.ID().Int64(), deal.Version()).
		Updates(map[string]any{
			"status":      model.Status,
			"notes":       model.Notes,
			"on_chain_id": model.OnChainID,
			"signed_at":   model.SignedAt,
			"version":     model.Version,
		})
	if res.Error != nil {
		return fmt.Errorf("update deal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		exists, err := r.Exists(ctx, deal.ID())
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrStaleDeal
		}
		model.Version = 1
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("insert deal: %w", err)
		}
	}
	return nil
}

func (r *DealRepository) FindByID(ctx context.Context, id domain.DealID) (*domain.Deal, error) {
	var model dealModel
	err := r.db.WithContext(ctx).Where("id = ?", id.Int64()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDealNotFound
		}
		return nil, fmt.Errorf("find deal: %w", err)
	}
	return toDomain(model)
}

func (r *DealRepository) FindByUser(ctx context.Context, userID domain.UserID) ([]*domain.Deal, error) {
	var models []dealModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID.Int64(), userID.Int64()).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find deals by user: %w", err)
	}
	return toDomainSlice(models)
}

func (r *DealRepository) FindByBuyer(ctx context.Context, buyerID domain.UserID) ([]*domain.Deal, error) {
	var models []dealModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID.Int64()).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find deals by buyer: %w", err)
	}
	return toDomainSlice(models)
}

func (r *DealRepository) FindBySeller(ctx context.Context, sellerID domain.UserID) ([]*domain.Deal, error) {
	var models []dealModel
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID.Int64()).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find deals by seller: %w", err)
	}
	return toDomainSlice(models)
}

func (r *DealRepository) FindActive(ctx context.Context) ([]*domain.Deal, error) {
	var models []dealModel
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{domain.StatusPending.String(), domain.StatusAccepted.String()}).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find active deals: %w", err)
	}
	return toDomainSlice(models)
}

func (r *DealRepository) NextID(ctx context.Context) (domain.DealID, error) {
	var maxID int64
	err := r.db.WithContext(ctx).
		Model(&dealModel{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return 0, fmt.Errorf("next deal id: %w", err)
	}
	return domain.NewDealID(maxID + 1)
}

func (r *DealRepository) Delete(ctx context.Context, id domain.DealID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.Int64()).Delete(&dealModel{})
	if res.Error != nil {
		return fmt.Errorf("delete deal: %w", res.Error)
	}
	return nil
}

func (r *DealRepository) Exists(ctx context.Context, id domain.DealID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dealModel{}).
		Where("id = ?", id.Int64()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("deal exists: %w", err)
	}
	return count > 0, nil
}

func toModel(deal *domain.Deal) dealModel {
	var notes *string
	if !deal.Notes().IsEmpty() {
		value := deal.Notes().String()
		notes = &value
	}
	var onChainID *string
	if deal.IsOnChain() {
		value := deal.OnChainID()
		onChainID = &value
	}
	return dealModel{
		ID:        deal.ID().Int64(),
		UUID:      deal.UUID(),
		AdID:      deal.AdID().Int64(),
		BuyerID:   deal.BuyerID().Int64(),
		SellerID:  deal.SellerID().Int64(),
		Price:     deal.Price().Major().String(),
		Status:    deal.Status().String(),
		Notes:     notes,
		OnChainID: onChainID,
		CreatedAt: deal.CreatedAt(),
		SignedAt:  deal.SignedAt(),
	}
}

func toDomain(model dealModel) (*domain.Deal, error) {
	id, err := domain.NewDealID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("deal %d: %w", model.ID, err)
	}
	adID, err := domain.NewAdID(model.AdID)
	if err != nil {
		return nil, fmt.Errorf("deal %d ad id: %w", model.ID, err)
	}
	buyerID, err := domain.NewUserID(model.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("deal %d buyer id: %w", model.ID, err)
	}
	sellerID, err := domain.NewUserID(model.SellerID)
	if err != nil {
		return nil, fmt.Errorf("deal %d seller id: %w", model.ID, err)
	}
	major, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, fmt.Errorf("deal %d price: %w", model.ID, err)
	}
	price, err := domain.MoneyFromMajor(major)
	if err != nil {
		return nil, fmt.Errorf("deal %d price: %w", model.ID, err)
	}
	status, err := domain.ParseDealStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("deal %d: %w", model.ID, err)
	}

	// A NULL notes column means "no notes", never an empty-string note.
	var notesText string
	if model.Notes != nil {
		notesText = *model.Notes
	}
	notes, err := domain.NewDealNotes(notesText)
	if err != nil {
		return nil, fmt.Errorf("deal %d notes: %w", model.ID, err)
	}

	var onChainID string
	if model.OnChainID != nil {
		onChainID = *model.OnChainID
	}

	return domain.ReconstructDeal(
		id, adID, buyerID, sellerID,
		price, status, notes, onChainID,
		model.UUID, model.CreatedAt, model.SignedAt, model.Version,
	), nil
}

func toDomainSlice(models []dealModel) ([]*domain.Deal, error) {
	deals := make([]*domain.Deal, 0, len(models))
	for _, model := range models {
		deal, err := toDomain(model)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, nil
}
