package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/usecase"
)

type ctxKey string

const (
	timeFormat             = "2006-01-02T15:04:05.999999999Z07:00"
	actingUserCtxKey ctxKey = "acting_user_id"
	maxJSONBodySize         = 1 << 20
)

type Handler struct {
	createDeal   *usecase.CreateDealService
	changeStatus *usecase.ChangeDealStatusService
	queries      *usecase.DealQueryService
	audit        *usecase.DealAuditService
	auth         *usecase.AuthService
	logger       *zap.Logger
}

func NewHandler(
	createDeal *usecase.CreateDealService,
	changeStatus *usecase.ChangeDealStatusService,
	queries *usecase.DealQueryService,
	audit *usecase.DealAuditService,
	auth *usecase.AuthService,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		createDeal:   createDeal,
		changeStatus: changeStatus,
		queries:      queries,
		audit:        audit,
		auth:         auth,
		logger:       logger,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", h.healthz)

	r.Group(func(pr chi.Router) {
		pr.Use(h.requireUser)
		pr.Post("/v1/deals", h.create)
		pr.Get("/v1/deals", h.list)
		pr.Get("/v1/deals/{id}", h.get)
		pr.Post("/v1/deals/{id}/status", h.updateStatus)
		pr.Get("/v1/deals/{id}/audit", h.listAudit)
	})

	return r
}

type createDealRequest struct {
	AdID      int64           `json:"ad_id"`
	SellerID  int64           `json:"seller_id"`
	Price     decimal.Decimal `json:"price"`
	Notes     string          `json:"notes"`
	Documents []string        `json:"documents"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type dealResponse struct {
	ID                   int64    `json:"id"`
	UUID                 string   `json:"uuid"`
	AdID                 int64    `json:"ad_id"`
	BuyerID              int64    `json:"buyer_id"`
	SellerID             int64    `json:"seller_id"`
	Price                string   `json:"price"`
	Status               string   `json:"status"`
	Notes                *string  `json:"notes"`
	OnChainID            *string  `json:"on_chain_id"`
	CreatedAt            string   `json:"created_at"`
	SignedAt             *string  `json:"signed_at"`
	AvailableTransitions []string `json:"available_transitions"`
}

type auditEntryResponse struct {
	ID             int64  `json:"id"`
	Action         string `json:"action"`
	PreviousStatus string `json:"previous_status,omitempty"`
	NewStatus      string `json:"new_status,omitempty"`
	At             string `json:"at"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read body")
		return
	}
	if err := validateCreateDealBody(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createDealRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	deal, err := h.createDeal.Execute(r.Context(), usecase.CreateDealCommand{
		AdID:      req.AdID,
		BuyerID:   actingUserFromContext(r.Context()),
		SellerID:  req.SellerID,
		Price:     req.Price,
		Notes:     req.Notes,
		Documents: req.Documents,
	})
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDealResponse(deal))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	dealID, ok := parseDealID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	var req changeStatusRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	deal, err := h.changeStatus.Execute(r.Context(), usecase.ChangeDealStatusCommand{
		DealID:       dealID,
		NewStatus:    req.Status,
		ActingUserID: actingUserFromContext(r.Context()),
		Reason:       req.Reason,
	})
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDealResponse(deal))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	dealID, ok := parseDealID(w, r)
	if !ok {
		return
	}

	deal, err := h.queries.FindByID(r.Context(), dealID, actingUserFromContext(r.Context()))
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDealResponse(deal))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := actingUserFromContext(ctx)
	query := r.URL.Query()

	var deals []*domain.Deal
	var err error
	switch {
	case query.Get("active") == "true":
		deals, err = h.queries.ActiveOnly(ctx, userID)
	case query.Get("on_chain") == "true":
		deals, err = h.queries.OnChainOnly(ctx, userID)
	case query.Get("role") == "buyer":
		deals, err = h.queries.ForBuyer(ctx, userID)
	case query.Get("role") == "seller":
		deals, err = h.queries.ForSeller(ctx, userID)
	case query.Get("role") == "":
		deals, err = h.queries.ForUser(ctx, userID)
	default:
		writeError(w, http.StatusBadRequest, "role must be buyer or seller")
		return
	}
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	out := make([]dealResponse, 0, len(deals))
	for _, deal := range deals {
		out = append(out, toDealResponse(deal))
	}
	writeJSON(w, http.StatusOK, map[string]any{"deals": out})
}

func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	dealID, ok := parseDealID(w, r)
	if !ok {
		return
	}

	// Only deal parties may read the trail.
	if _, err := h.queries.FindByID(r.Context(), dealID, actingUserFromContext(r.Context())); err != nil {
		h.handleDomainError(w, err)
		return
	}

	entries, err := h.audit.List(r.Context(), dealID, 0, 0)
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	out := make([]auditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, auditEntryResponse{
			ID:             entry.ID,
			Action:         entry.Action,
			PreviousStatus: entry.PreviousStatus,
			NewStatus:      entry.NewStatus,
			At:             entry.At.UTC().Format(timeFormat),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("Authorization"))
		if strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = strings.TrimSpace(token[7:])
		}

		accessToken, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthorized) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			h.logger.Error("authenticate", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), actingUserCtxKey, accessToken.UserID.Int64())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func toDealResponse(deal *domain.Deal) dealResponse {
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
	var signedAt *string
	if t := deal.SignedAt(); t != nil {
		value := t.UTC().Format(timeFormat)
		signedAt = &value
	}

	transitions := deal.Status().AvailableTransitions()
	available := make([]string, 0, len(transitions))
	for _, status := range transitions {
		available = append(available, status.String())
	}

	return dealResponse{
		ID:                   deal.ID().Int64(),
		UUID:                 deal.UUID(),
		AdID:                 deal.AdID().Int64(),
		BuyerID:              deal.BuyerID().Int64(),
		SellerID:             deal.SellerID().Int64(),
		Price:                deal.Price().Major().StringFixed(2),
		Status:               deal.Status().String(),
		Notes:                notes,
		OnChainID:            onChainID,
		CreatedAt:            deal.CreatedAt().UTC().Format(timeFormat),
		SignedAt:             signedAt,
		AvailableTransitions: available,
	}
}

func parseDealID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "deal id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func (h *Handler) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSameParty),
		errors.Is(err, domain.ErrNonPositivePrice),
		errors.Is(err, domain.ErrReasonRequired),
		errors.Is(err, domain.ErrCannotRevertToPending),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, domain.ErrNotesTooLong),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyInStatus),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrStaleDeal):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrDealNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotDealParty):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func actingUserFromContext(ctx context.Context) int64 {
	userID, _ := ctx.Value(actingUserCtxKey).(int64)
	return userID
}
