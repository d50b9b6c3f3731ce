package ports

import (
	"context"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

// DocumentAttacher links uploaded document references to a deal after it is
// persisted. It is an external collaborator: a failure must not roll back
// deal creation.
type DocumentAttacher interface {
	Attach(ctx context.Context, dealID domain.DealID, documents []string) error
}
