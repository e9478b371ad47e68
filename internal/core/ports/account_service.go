package ports

import (
	"context"

	"github.com/alexdiasritter/softex-curso/internal/core/domain"
)

// AccountService is the single validation and authorization boundary for
// account operations. Mutating operations return the collaborator's success
// message; failures are sentinel errors from the domain package carrying the
// exact user-facing text. Returned users are always sanitized (no credential
// hash).
type AccountService interface {
	Register(ctx context.Context, secret, email, fullName, profile string) (string, error)
	Authenticate(ctx context.Context, email, secret string) (*domain.User, error)
	UpdateProfile(ctx context.Context, actingID int64, actingProfile string, targetID int64, changes UserChanges) (string, error)
	Delete(ctx context.Context, actingProfile string, targetID int64) (string, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}
