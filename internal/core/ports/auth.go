package ports

import (
	"context"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

type AccessTokenRepository interface {
	FindByTokenHash(ctx context.Context, tokenHash string) (domain.AccessToken, error)
	Upsert(ctx context.Context, token domain.AccessToken) error
}
