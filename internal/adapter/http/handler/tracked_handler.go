package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karbiaO9/BlockMind-sub000/internal/adapter/http/dto"
	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
)

// TrackedService defines the behavior needed by TrackedHandler.
type TrackedService interface {
	Track(ctx context.Context, input usecase.TrackWalletInput) (*domain.TrackedWallet, error)
	Untrack(ctx context.Context, address string) error
	SetStatus(ctx context.Context, address string, status domain.WalletStatus) error
	List(ctx context.Context) ([]*domain.TrackedWallet, error)
	Snapshots() map[string]*domain.WalletLiveSnapshot
}

// TrackedHandler handles tracked-wallet HTTP requests.
type TrackedHandler struct {
	tracked TrackedService
}

// NewTrackedHandler creates a new TrackedHandler.
func NewTrackedHandler(tracked TrackedService) *TrackedHandler {
	return &TrackedHandler{tracked: tracked}
}

// List lists tracked wallets.
func (h *TrackedHandler) List(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.tracked.List(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list tracked wallets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TrackedWalletsFromDomain(wallets))
}

// Create starts tracking a new address.
func (h *TrackedHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TrackWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.tracked.Track(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to track wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TrackedWalletFromDomain(wallet))
}

// Delete stops tracking an address.
func (h *TrackedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	if err := h.tracked.Untrack(r.Context(), address); err != nil {
		writeError(w, mapDomainError(err), "failed to untrack wallet", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Pause pauses polling for an address.
func (h *TrackedHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.WalletStatusPaused)
}

// Resume resumes polling for an address.
func (h *TrackedHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.WalletStatusActive)
}

func (h *TrackedHandler) setStatus(w http.ResponseWriter, r *http.Request, status domain.WalletStatus) {
	address := chi.URLParam(r, "address")

	if err := h.tracked.SetStatus(r.Context(), address, status); err != nil {
		writeError(w, mapDomainError(err), "failed to update wallet status", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Snapshots returns the latest live snapshot per tracked address.
func (h *TrackedHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.SnapshotsFromDomain(h.tracked.Snapshots()))
}
