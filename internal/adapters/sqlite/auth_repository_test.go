package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

func TestAccessTokenUpsertAndFind(t *testing.T) {
	repo := NewAccessTokenRepository(openTestDB(t))
	ctx := context.Background()

	token := domain.AccessToken{
		TokenHash: "hash-1",
		UserID:    10,
		Name:      "ci",
		Active:    true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Upsert(ctx, token); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	found, err := repo.FindByTokenHash(ctx, "hash-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.UserID != 10 || found.Name != "ci" || !found.Active {
		t.Fatalf("unexpected token: %+v", found)
	}
}

func TestAccessTokenUpsertOverwrites(t *testing.T) {
	repo := NewAccessTokenRepository(openTestDB(t))
	ctx := context.Background()

	token := domain.AccessToken{TokenHash: "hash-1", UserID: 10, Name: "ci", Active: true, CreatedAt: time.Now().UTC()}
	if err := repo.Upsert(ctx, token); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	token.Active = false
	token.UserID = 11
	if err := repo.Upsert(ctx, token); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	found, err := repo.FindByTokenHash(ctx, "hash-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Active || found.UserID != 11 {
		t.Fatalf("upsert did not overwrite: %+v", found)
	}
}

func TestAccessTokenNotFound(t *testing.T) {
	repo := NewAccessTokenRepository(openTestDB(t))

	_, err := repo.FindByTokenHash(context.Background(), "missing")
	if !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected token not found, got %v", err)
	}
}
