package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karbiaO9/BlockMind-sub000/internal/adapter/http/dto"
	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	GetWalletInfo(ctx context.Context, address string, req domain.PageRequest) (*usecase.WalletInfo, error)
}

// PageService provides filtered transaction pages.
type PageService interface {
	GetFilteredPage(ctx context.Context, address string, req domain.PageRequest) (*domain.PageResult, error)
}

// StatsService provides lifetime wallet stats.
type StatsService interface {
	Aggregate(ctx context.Context, address string) (*domain.WalletStats, error)
}

// WalletHandler handles wallet view HTTP requests.
type WalletHandler struct {
	wallets WalletService
	pager   PageService
	stats   StatsService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets WalletService, pager PageService, stats StatsService) *WalletHandler {
	return &WalletHandler{
		wallets: wallets,
		pager:   pager,
		stats:   stats,
	}
}

// Get returns the composed wallet view: balance, stats, and one filtered
// transaction page.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	info, err := h.wallets.GetWalletInfo(r.Context(), address, parsePageRequest(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet info", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletInfoFromUseCase(info))
}

// Transactions returns one filtered page of the wallet's history.
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	page, err := h.pager.GetFilteredPage(r.Context(), address, parsePageRequest(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFromDomain(page))
}

// Stats returns lifetime aggregates for the wallet.
func (h *WalletHandler) Stats(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	stats, err := h.stats.Aggregate(r.Context(), address)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsFromDomain(stats))
}
