package dto

import (
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
)

// TrackWalletRequest represents a request to track an address.
type TrackWalletRequest struct {
	Address string `json:"address"`
	Label   string `json:"label"`
}

// ToUseCaseInput converts to use case input.
func (r *TrackWalletRequest) ToUseCaseInput() usecase.TrackWalletInput {
	return usecase.TrackWalletInput{
		Address: r.Address,
		Label:   r.Label,
	}
}
