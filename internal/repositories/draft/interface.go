package draft

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pickupfc/matchday/internal/repositories/draft Repository

import (
	"context"

	"github.com/pickupfc/matchday/internal/models"
)

// Repository defines the interface for draft persistence. A room holds
// at most one draft.
type Repository interface {
	// Save upserts the room's draft
	Save(ctx context.Context, input *SaveDraftInput) error

	// Get retrieves the room's draft
	Get(ctx context.Context, input *GetDraftInput) (*models.Draft, error)

	// Delete removes the room's draft; idempotent
	Delete(ctx context.Context, input *DeleteDraftInput) (*DeleteDraftOutput, error)
}
