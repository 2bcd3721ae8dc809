// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// ActivityRepository defines the read surface this worker needs on
// activities. Activity writes belong to the main API's CRUD path.
type ActivityRepository interface {
	// FindByID retrieves an activity by its ID. Soft-deleted activities are
	// not returned.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
}
