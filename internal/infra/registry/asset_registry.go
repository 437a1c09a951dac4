package registry

import (
	"fmt"
	"sync"

	"escrow-market/internal/infra"

	"github.com/google/uuid"
)

// Receiver is the inbound-transfer acceptance hook. Identities registered as
// receivers are consulted on every transfer addressed to them; returning an
// error rejects the transfer.
type Receiver interface {
	OnAssetReceived(collection uuid.UUID, from uuid.UUID, assetID uint64) error
}

type assetKey struct {
	collection uuid.UUID
	assetID    uint64
}

type approvalKey struct {
	owner    uuid.UUID
	operator uuid.UUID
}

// AssetRegistry is the in-memory owner-of-record for assets. Transfers
// require the mover to be the current owner or an operator the owner has
// approved.
type AssetRegistry struct {
	mu        sync.RWMutex
	owners    map[assetKey]uuid.UUID
	approvals map[approvalKey]bool
	receivers map[uuid.UUID]Receiver
}

func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{
		owners:    make(map[assetKey]uuid.UUID),
		approvals: make(map[approvalKey]bool),
		receivers: make(map[uuid.UUID]Receiver),
	}
}

// Mint records a new asset owned by owner. Fails if the asset already exists.
func (r *AssetRegistry) Mint(collection uuid.UUID, assetID uint64, owner uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := assetKey{collection: collection, assetID: assetID}
	if _, exists := r.owners[key]; exists {
		return infra.NewRepoErr(infra.KindDuplicateKey, fmt.Sprintf("asset %d already minted in collection %s", assetID, collection))
	}
	r.owners[key] = owner
	return nil
}

func (r *AssetRegistry) OwnerOf(collection uuid.UUID, assetID uint64) (uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[assetKey{collection: collection, assetID: assetID}]
	if !ok {
		return uuid.Nil, infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("asset %d not found in collection %s", assetID, collection))
	}
	return owner, nil
}

// SetApproval lets owner authorize (or revoke) operator to move any of its
// assets on its behalf.
func (r *AssetRegistry) SetApproval(owner, operator uuid.UUID, approved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := approvalKey{owner: owner, operator: operator}
	if approved {
		r.approvals[key] = true
	} else {
		delete(r.approvals, key)
	}
}

// RegisterReceiver installs the acceptance hook for an identity.
func (r *AssetRegistry) RegisterReceiver(id uuid.UUID, recv Receiver) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.receivers[id] = recv
}

// TransferFrom moves custody of the asset from `from` to `to` on behalf of
// mover. The mover must be the owner itself or an approved operator, and
// `from` must be the current owner of record. If `to` is a registered
// receiver its hook is consulted before custody changes.
func (r *AssetRegistry) TransferFrom(mover, from, to uuid.UUID, collection uuid.UUID, assetID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := assetKey{collection: collection, assetID: assetID}
	owner, ok := r.owners[key]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("asset %d not found in collection %s", assetID, collection))
	}
	if owner != from {
		return infra.NewRepoErr(infra.KindNotAuthorized, "transfer sender is not the owner of record")
	}
	if mover != from && !r.approvals[approvalKey{owner: from, operator: mover}] {
		return infra.NewRepoErr(infra.KindNotAuthorized, "mover is not approved by the owner")
	}

	if recv, registered := r.receivers[to]; registered {
		if err := recv.OnAssetReceived(collection, from, assetID); err != nil {
			return infra.WrapRepoErr(infra.KindTransferRejected, "receiver rejected the asset", err)
		}
	}

	r.owners[key] = to
	return nil
}
