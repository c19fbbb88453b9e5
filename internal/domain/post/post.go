// Package post holds the slice of the posts collaborator this service needs:
// the account delete-cascade removes everything an owner authored.
package post

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
