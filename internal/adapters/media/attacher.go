package media

import (
	"context"

	"go.uber.org/zap"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

// LogAttacher stands in for the media service that links uploaded documents
// to a deal. It only records what would be attached; the real collaborator
// lives outside this service.
type LogAttacher struct {
	logger *zap.Logger
}

func NewLogAttacher(logger *zap.Logger) *LogAttacher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogAttacher{logger: logger}
}

func (a *LogAttacher) Attach(_ context.Context, dealID domain.DealID, documents []string) error {
	a.logger.Info("deal documents attached",
		zap.Int64("deal_id", dealID.Int64()),
		zap.Strings("documents", documents))
	return nil
}
