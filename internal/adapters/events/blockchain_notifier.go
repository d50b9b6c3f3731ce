package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

const (
	defaultNotifyTimeout = 10 * time.Second
	saveDealPath         = "/save-deal"
)

type dealPayload struct {
	DealID   int64           `json:"deal_id"`
	UniqueID string          `json:"unique_id"`
	AdID     int64           `json:"ad_id"`
	BuyerID  int64           `json:"buyer_id"`
	SellerID int64           `json:"seller_id"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status"`
	Notes    *string         `json:"notes"`
}

// BlockchainNotifier forwards a snapshot of every created deal to the
// blockchain-recording microservice. It runs after the deal is committed;
// the dispatcher logs failures and never surfaces them to the caller of
// deal creation.
type BlockchainNotifier struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewBlockchainNotifier POSTs created deals to baseURL + "/save-deal". A zero
// or negative timeout falls back to defaultNotifyTimeout (10 s).
func NewBlockchainNotifier(baseURL string, timeout time.Duration, logger *zap.Logger) *BlockchainNotifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlockchainNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (n *BlockchainNotifier) Handle(ctx context.Context, event domain.Event) error {
	created, ok := event.(domain.DealWasCreated)
	if !ok {
		return nil
	}

	// New deals are always pending and carry no notes yet.
	payload := dealPayload{
		DealID:   created.DealID.Int64(),
		UniqueID: created.DealUUID,
		AdID:     created.AdID.Int64(),
		BuyerID:  created.BuyerID.Int64(),
		SellerID: created.SellerID.Int64(),
		Price:    created.Price.Major(),
		Status:   domain.StatusPending.String(),
		Notes:    nil,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal deal payload: %w", err)
	}

	url := n.baseURL + saveDealPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send deal %d to %s: %w", created.DealID.Int64(), url, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send deal %d to %s: status %d", created.DealID.Int64(), url, resp.StatusCode)
	}

	n.logger.Info("deal sent to blockchain microservice",
		zap.Int64("deal_id", created.DealID.Int64()),
		zap.String("endpoint", url))
	return nil
}
