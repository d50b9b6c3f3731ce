package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

type LogListener struct {
	logger *zap.Logger
}

func NewLogListener(logger *zap.Logger) *LogListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) Handle(_ context.Context, event domain.Event) error {
	switch e := event.(type) {
	case domain.DealWasCreated:
		l.logger.Info("deal created",
			zap.Int64("deal_id", e.DealID.Int64()),
			zap.String("uuid", e.DealUUID),
			zap.Int64("ad_id", e.AdID.Int64()),
			zap.Int64("buyer_id", e.BuyerID.Int64()),
			zap.Int64("seller_id", e.SellerID.Int64()),
			zap.String("price", e.Price.String()))
	case domain.DealStatusWasChanged:
		l.logger.Info("deal status changed",
			zap.Int64("deal_id", e.DealID.Int64()),
			zap.String("from", e.PreviousStatus.String()),
			zap.String("to", e.NewStatus.String()))
	default:
		l.logger.Info("deal event", zap.String("event", event.EventName()))
	}
	return nil
}
