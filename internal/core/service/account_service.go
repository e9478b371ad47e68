package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/alexdiasritter/softex-curso/internal/core/domain"
	"github.com/alexdiasritter/softex-curso/internal/core/ports"
)

// AccountService enforces field validation and the authorization policy for
// every account operation, delegating persistence to the store and secret
// handling to the hasher.
type AccountService struct {
	store  ports.UserStore
	hasher ports.CredentialHasher
	log    zerolog.Logger
}

func NewAccountService(store ports.UserStore, hasher ports.CredentialHasher, log zerolog.Logger) *AccountService {
	return &AccountService{store: store, hasher: hasher, log: log}
}

// Register validates the new account fields in fixed order (email, name,
// secret — first failure wins), hashes the secret, and delegates creation to
// the store. The store's outcome is propagated verbatim. An empty profile
// defaults to Afiliado; unknown profiles are rejected.
func (s *AccountService) Register(ctx context.Context, secret, email, fullName, profile string) (string, error) {
	if !validEmail(email) {
		return "", domain.ErrInvalidEmail
	}
	if !validFullName(fullName) {
		return "", domain.ErrInvalidName
	}
	if len(secret) < 8 {
		return "", domain.ErrInvalidSecret
	}
	if profile == "" {
		profile = domain.ProfileAfiliado
	}
	if !domain.ValidProfile(profile) {
		return "", domain.ErrInvalidProfile
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		s.log.Error().Err(err).Msg("credential hashing failed")
		return "", err
	}

	msg, err := s.store.Create(ctx, hash, email, fullName, profile)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("email", email).Str("profile", profile).Msg("account registered")
	return msg, nil
}

// Authenticate looks the account up by email and verifies the secret against
// the stored hash. Unknown email and wrong secret produce the same error so
// account existence cannot be probed. The returned user is sanitized.
func (s *AccountService) Authenticate(ctx context.Context, email, secret string) (*domain.User, error) {
	if email == "" || secret == "" {
		return nil, domain.ErrEmptyCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(secret, user.CredentialHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return safeView(user), nil
}

// UpdateProfile applies a partial update to the target account. The acting
// principal must be authorized first; each supplied field is then validated
// independently and a single store update is issued with the full validated
// set. Blank fields are ignored, and an update with nothing to apply fails
// without touching the store.
func (s *AccountService) UpdateProfile(ctx context.Context, actingID int64, actingProfile string, targetID int64, changes ports.UserChanges) (string, error) {
	if !isAuthorized(actingID, actingProfile, targetID, domain.ActionEditSelf) {
		return "", domain.ErrAccessDenied
	}

	var update ports.UserUpdate

	if secret := deref(changes.Secret); secret != "" {
		if len(secret) < 8 {
			return "", domain.ErrShortNewSecret
		}
		hash, err := s.hasher.Hash(secret)
		if err != nil {
			s.log.Error().Err(err).Msg("credential hashing failed")
			return "", err
		}
		update.CredentialHash = &hash
	}

	if email := deref(changes.Email); email != "" {
		if !validEmail(email) {
			return "", domain.ErrNewEmailInvalid
		}
		update.Email = &email
	}

	if name := deref(changes.FullName); name != "" {
		if !validFullName(name) {
			return "", domain.ErrNewNameInvalid
		}
		update.FullName = &name
	}

	if update.Empty() {
		return "", domain.ErrNoUpdates
	}

	msg, err := s.store.UpdateByID(ctx, targetID, update)
	if err != nil {
		return "", err
	}
	s.log.Info().Int64("target_id", targetID).Msg("account updated")
	return msg, nil
}

// Delete removes the target account. Only the Diretoria profile may delete;
// everyone else is refused before the store is reached.
func (s *AccountService) Delete(ctx context.Context, actingProfile string, targetID int64) (string, error) {
	if actingProfile != domain.ProfileDiretoria {
		return "", domain.ErrDeleteDenied
	}

	msg, err := s.store.DeleteByID(ctx, targetID)
	if err != nil {
		return "", err
	}
	s.log.Info().Int64("target_id", targetID).Msg("account deleted")
	return msg, nil
}

// GetByID returns the sanitized account, or (nil, nil) when it does not exist.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return safeView(user), nil
}

// ListAll returns every account sanitized, preserving store order. Nil
// entries from the store sanitize to nothing and are dropped.
func (s *AccountService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	safe := make([]domain.User, 0, len(users))
	for _, user := range users {
		if u := safeView(user); u != nil {
			safe = append(safe, *u)
		}
	}
	return safe, nil
}

// isAuthorized is the flat account authorization policy:
//  1. Diretoria is always authorized.
//  2. Without a target there is nothing to authorize against.
//  3. edit_self requires acting and target to be the same account; the zero
//     id is the "absent" sentinel and never self-authorizes (rule 2 already
//     rejects a zero target).
//  4. Everything else is denied.
func isAuthorized(actingID int64, actingProfile string, targetID int64, action string) bool {
	if actingProfile == domain.ProfileDiretoria {
		return true
	}
	if targetID == 0 {
		return false
	}
	if action == domain.ActionEditSelf {
		return actingID == targetID
	}
	return false
}

// safeView returns a copy of the record with the credential hash removed, or
// nil when there is no record. Every user leaving the service passes through
// here.
func safeView(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.CredentialHash = ""
	return &clone
}

// validEmail applies the registration email rule: at least 10 characters,
// an "@", and a ".com" suffix.
func validEmail(email string) bool {
	return len(email) >= 10 && strings.Contains(email, "@") && strings.HasSuffix(email, ".com")
}

// validFullName accepts names made of letters and spaces only, with at least
// one letter.
func validFullName(name string) bool {
	stripped := strings.ReplaceAll(name, " ", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
