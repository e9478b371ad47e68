package ports

import (
	"context"

	"github.com/alexdiasritter/softex-curso/internal/core/domain"
)

// UserChanges carries the updatable profile fields. A nil pointer means the
// field was not supplied; a pointer to an empty string means supplied but
// blank, which the service treats the same as absent.
type UserChanges struct {
	Secret   *string `json:"secret,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// UserUpdate is the validated field set handed to the store. The secret has
// already been hashed by the time it gets here.
type UserUpdate struct {
	CredentialHash *string
	Email          *string
	FullName       *string
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.CredentialHash == nil && u.Email == nil && u.FullName == nil
}

// UserStore is the persistence collaborator. It owns id generation and email
// uniqueness; mutation outcomes come back as a success message or an error
// whose text is the user-facing failure message. Find methods return
// (nil, nil) when no record matches.
type UserStore interface {
	Create(ctx context.Context, credentialHash, email, fullName, profile string) (string, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateByID(ctx context.Context, id int64, update UserUpdate) (string, error)
	DeleteByID(ctx context.Context, id int64) (string, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}
