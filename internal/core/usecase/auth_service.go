package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/ports"
)

var ErrUnauthorized = errors.New("unauthorized")

// AuthService resolves bearer tokens to the marketplace user acting through
// the API. Tokens are stored hashed; lookups compare SHA-256 digests.
type AuthService struct {
	repo ports.AccessTokenRepository
}

func NewAuthService(repo ports.AccessTokenRepository) *AuthService {
	return &AuthService{repo: repo}
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.AccessToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.AccessToken{}, ErrUnauthorized
	}

	hash := HashToken(token)
	accessToken, err := s.repo.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return domain.AccessToken{}, ErrUnauthorized
		}
		return domain.AccessToken{}, err
	}
	if !accessToken.Active {
		return domain.AccessToken{}, ErrUnauthorized
	}
	return accessToken, nil
}

func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
