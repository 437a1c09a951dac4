package request

import "github.com/google/uuid"

type MintAssetRequest struct {
	Collection uuid.UUID `json:"collection" binding:"required"`
	AssetID    uint64    `json:"assetId"`
	Owner      uuid.UUID `json:"owner" binding:"required"`
}

// ApproveEngineRequest lets the caller authorize (or revoke) the escrow
// engine to move its assets.
type ApproveEngineRequest struct {
	Approved *bool `json:"approved"`
}

func (r ApproveEngineRequest) IsApproved() bool {
	if r.Approved == nil {
		return true
	}
	return *r.Approved
}

type DepositRequest struct {
	To     uuid.UUID `json:"to" binding:"required"`
	Amount uint64    `json:"amount" binding:"required"`
}
