package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tokensave/buildtrust/internal/adapters/events"
	"github.com/tokensave/buildtrust/internal/adapters/httpapi"
	"github.com/tokensave/buildtrust/internal/adapters/media"
	sqliteadapter "github.com/tokensave/buildtrust/internal/adapters/sqlite"
	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/ports"
	"github.com/tokensave/buildtrust/internal/core/usecase"
	"github.com/tokensave/buildtrust/migrations"
)

type Config struct {
	Addr               string
	DBPath             string
	BlockchainAPIURL   string
	BootstrapToken     string
	BootstrapUserID    int64
	BootstrapTokenName string
}

type resourceCloser struct {
	closers []io.Closer
}

func (r resourceCloser) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type dbCloser struct {
	db *gorm.DB
}

func (c dbCloser) Close() error {
	return sqliteadapter.Close(c.db)
}

// NewServer wires the deal service together: sqlite storage, use cases,
// event listeners and the HTTP edge.
func NewServer(ctx context.Context, cfg Config, logger *zap.Logger) (*http.Server, io.Closer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sqliteadapter.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		_ = sqliteadapter.Close(db)
		return nil, nil, fmt.Errorf("resolve sql db: %w", err)
	}

	migCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := migrations.Up(migCtx, sqlDB); err != nil {
		_ = sqliteadapter.Close(db)
		return nil, nil, err
	}

	dealRepo := sqliteadapter.NewDealRepository(db)
	tokenRepo := sqliteadapter.NewAccessTokenRepository(db)
	auditRepo := sqliteadapter.NewDealAuditRepository(db)

	listeners := []ports.EventListener{
		events.NewLogListener(logger),
		events.NewAuditRecorder(auditRepo),
	}
	if cfg.BlockchainAPIURL != "" {
		listeners = append(listeners, events.NewBlockchainNotifier(cfg.BlockchainAPIURL, 10*time.Second, logger))
	}
	dispatcher := usecase.NewEventDispatcher(logger, listeners...)

	createDeal := usecase.NewCreateDealService(dealRepo, dispatcher, media.NewLogAttacher(logger), logger)
	changeStatus := usecase.NewChangeDealStatusService(dealRepo, dispatcher)
	queries := usecase.NewDealQueryService(dealRepo)
	audit := usecase.NewDealAuditService(auditRepo)
	auth := usecase.NewAuthService(tokenRepo)

	if cfg.BootstrapToken != "" {
		userID, err := domain.NewUserID(cfg.BootstrapUserID)
		if err != nil {
			_ = sqliteadapter.Close(db)
			return nil, nil, fmt.Errorf("bootstrap user id: %w", err)
		}
		name := cfg.BootstrapTokenName
		if name == "" {
			name = "bootstrap"
		}

		bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = tokenRepo.Upsert(bootstrapCtx, domain.AccessToken{
			TokenHash: usecase.HashToken(cfg.BootstrapToken),
			UserID:    userID,
			Name:      name,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		})
		bootstrapCancel()
		if err != nil {
			_ = sqliteadapter.Close(db)
			return nil, nil, fmt.Errorf("bootstrap access token: %w", err)
		}
	}

	handler := httpapi.NewHandler(createDeal, changeStatus, queries, audit, auth, logger)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return server, resourceCloser{closers: []io.Closer{dbCloser{db: db}}}, nil
}
