package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

type accessTokenModel struct {
	TokenHash string    `gorm:"column:token_hash;primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Name      string    `gorm:"column:name;not null"`
	Active    bool      `gorm:"column:active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (accessTokenModel) TableName() string {
	return "access_tokens"
}

type AccessTokenRepository struct {
	db *gorm.DB
}

func NewAccessTokenRepository(db *gorm.DB) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

func (r *AccessTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (domain.AccessToken, error) {
	var model accessTokenModel
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AccessToken{}, domain.ErrTokenNotFound
		}
		return domain.AccessToken{}, fmt.Errorf("find access token: %w", err)
	}

	return domain.AccessToken{
		TokenHash: model.TokenHash,
		UserID:    domain.UserID(model.UserID),
		Name:      model.Name,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
	}, nil
}

func (r *AccessTokenRepository) Upsert(ctx context.Context, token domain.AccessToken) error {
	model := accessTokenModel{
		TokenHash: token.TokenHash,
		UserID:    token.UserID.Int64(),
		Name:      token.Name,
		Active:    token.Active,
		CreatedAt: token.CreatedAt,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "name", "active"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("upsert access token: %w", err)
	}
	return nil
}
