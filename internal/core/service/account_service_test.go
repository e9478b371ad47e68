package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alexdiasritter/softex-curso/internal/core/domain"
	"github.com/alexdiasritter/softex-curso/internal/core/ports"
)

// stubHasher produces reversible fake hashes so tests can assert what
// reached the store without real bcrypt work.
type stubHasher struct {
	hashErr error
}

func (h *stubHasher) Hash(secret string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "HASHED_" + secret, nil
}

func (h *stubHasher) Verify(secret, hash string) bool {
	return "HASHED_"+secret == hash
}

type createCall struct {
	hash, email, fullName, profile string
}

type updateCall struct {
	id     int64
	update ports.UserUpdate
}

// stubStore records every call and plays back configured results.
type stubStore struct {
	createCalls []createCall
	updateCalls []updateCall
	deleteCalls []int64

	createMsg string
	createErr error
	updateMsg string
	updateErr error
	deleteMsg string
	deleteErr error

	byEmail map[string]*domain.User
	byID    map[int64]*domain.User
	all     []*domain.User
}

func newStubStore() *stubStore {
	return &stubStore{
		createMsg: domain.MsgUserCreated,
		updateMsg: domain.MsgUserUpdated,
		deleteMsg: domain.MsgUserDeleted,
		byEmail:   make(map[string]*domain.User),
		byID:      make(map[int64]*domain.User),
	}
}

func (s *stubStore) Create(_ context.Context, hash, email, fullName, profile string) (string, error) {
	s.createCalls = append(s.createCalls, createCall{hash, email, fullName, profile})
	if s.createErr != nil {
		return "", s.createErr
	}
	return s.createMsg, nil
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.byEmail[email], nil
}

func (s *stubStore) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return s.byID[id], nil
}

func (s *stubStore) UpdateByID(_ context.Context, id int64, update ports.UserUpdate) (string, error) {
	s.updateCalls = append(s.updateCalls, updateCall{id, update})
	if s.updateErr != nil {
		return "", s.updateErr
	}
	return s.updateMsg, nil
}

func (s *stubStore) DeleteByID(_ context.Context, id int64) (string, error) {
	s.deleteCalls = append(s.deleteCalls, id)
	if s.deleteErr != nil {
		return "", s.deleteErr
	}
	return s.deleteMsg, nil
}

func (s *stubStore) ListAll(_ context.Context) ([]*domain.User, error) {
	return s.all, nil
}

func newTestService(store *stubStore) *AccountService {
	return NewAccountService(store, &stubHasher{}, zerolog.Nop())
}

func strptr(s string) *string { return &s }

func storedUser() *domain.User {
	return &domain.User{
		ID:             1,
		Email:          "test@dominio.com",
		FullName:       "Nome Teste",
		AccessProfile:  domain.ProfileAfiliado,
		CredentialHash: "HASHED_12345678",
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		email    string
		fullName string
		want     error
	}{
		{"short secret", "1234567", "valido@email.com", "Nome Valido", domain.ErrInvalidSecret},
		{"empty secret", "", "valido@email.com", "Nome Valido", domain.ErrInvalidSecret},
		{"short email", "12345678", "inv.com", "Nome Valido", domain.ErrInvalidEmail},
		{"email without at", "12345678", "invalido.email.com", "Nome Valido", domain.ErrInvalidEmail},
		{"email without dot com", "12345678", "valido@email.org", "Nome Valido", domain.ErrInvalidEmail},
		{"empty email", "12345678", "", "Nome Valido", domain.ErrInvalidEmail},
		{"name with digits", "12345678", "valido@email.com", "123 Invalido", domain.ErrInvalidName},
		{"empty name", "12345678", "valido@email.com", "", domain.ErrInvalidName},
		{"name only spaces", "12345678", "valido@email.com", "   ", domain.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStubStore()
			svc := newTestService(store)

			_, err := svc.Register(context.Background(), tt.secret, tt.email, tt.fullName, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(store.createCalls) != 0 {
				t.Fatalf("store create should not be called")
			}
		})
	}
}

func TestRegister_ValidationOrder(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	// Every field is invalid: the email rule must win.
	_, err := svc.Register(context.Background(), "x", "bad", "123", "")
	if !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected email error first, got %v", err)
	}
}

func TestRegister_Success(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	msg, err := svc.Register(context.Background(), "senha_valida", "novo@usuario.com", "Usuario Novo", domain.ProfileGerente)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if msg != "Usuário criado com sucesso!" {
		t.Fatalf("unexpected message: %q", msg)
	}

	if len(store.createCalls) != 1 {
		t.Fatalf("expected one create call, got %d", len(store.createCalls))
	}
	call := store.createCalls[0]
	if call.hash != "HASHED_senha_valida" {
		t.Fatalf("store received %q, expected hashed secret", call.hash)
	}
	if call.hash == "senha_valida" {
		t.Fatalf("plaintext secret reached the store")
	}
	if call.email != "novo@usuario.com" || call.fullName != "Usuario Novo" || call.profile != domain.ProfileGerente {
		t.Fatalf("unexpected create call: %+v", call)
	}
}

func TestRegister_DefaultProfile(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	if _, err := svc.Register(context.Background(), "12345678", "valido@email.com", "Nome Valido", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if got := store.createCalls[0].profile; got != domain.ProfileAfiliado {
		t.Fatalf("expected default profile Afiliado, got %q", got)
	}
}

func TestRegister_UnknownProfile(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "12345678", "valido@email.com", "Nome Valido", "Estagiario")
	if !errors.Is(err, domain.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
	if len(store.createCalls) != 0 {
		t.Fatalf("store create should not be called")
	}
}

func TestRegister_StoreOutcomePropagated(t *testing.T) {
	store := newStubStore()
	store.createErr = domain.ErrEmailTaken
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "12345678", "valido@email.com", "Nome Valido", "")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected store error verbatim, got %v", err)
	}
}

func TestRegister_HasherFailureIsFatal(t *testing.T) {
	store := newStubStore()
	boom := errors.New("cost out of range")
	svc := NewAccountService(store, &stubHasher{hashErr: boom}, zerolog.Nop())

	_, err := svc.Register(context.Background(), "12345678", "valido@email.com", "Nome Valido", "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected hasher error, got %v", err)
	}
	if len(store.createCalls) != 0 {
		t.Fatalf("store create should not be called")
	}
}

func TestAuthenticate_Success(t *testing.T) {
	store := newStubStore()
	store.byEmail["test@dominio.com"] = storedUser()
	svc := newTestService(store)

	user, err := svc.Authenticate(context.Background(), "test@dominio.com", "12345678")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user == nil || user.ID != 1 || user.Email != "test@dominio.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.CredentialHash != "" {
		t.Fatalf("credential hash leaked: %q", user.CredentialHash)
	}
}

func TestAuthenticate_WrongSecretAndUnknownEmailAreIdentical(t *testing.T) {
	store := newStubStore()
	store.byEmail["test@dominio.com"] = storedUser()
	svc := newTestService(store)

	user, errWrong := svc.Authenticate(context.Background(), "test@dominio.com", "senha_errada")
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
	user, errUnknown := svc.Authenticate(context.Background(), "fantasma@dominio.com", "12345678")
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}

	if !errors.Is(errWrong, domain.ErrInvalidCredentials) || !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v / %v", errWrong, errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errWrong.Error(), errUnknown.Error())
	}
	if errWrong.Error() != "Erro: Email ou senha inválidos." {
		t.Fatalf("unexpected message: %q", errWrong.Error())
	}
}

func TestAuthenticate_EmptyCredentials(t *testing.T) {
	svc := newTestService(newStubStore())

	for _, pair := range [][2]string{{"", "12345678"}, {"test@dominio.com", ""}, {"", ""}} {
		if _, err := svc.Authenticate(context.Background(), pair[0], pair[1]); !errors.Is(err, domain.ErrEmptyCredentials) {
			t.Fatalf("expected ErrEmptyCredentials for %q/%q, got %v", pair[0], pair[1], err)
		}
	}
}

func TestIsAuthorized(t *testing.T) {
	tests := []struct {
		name          string
		actingID      int64
		actingProfile string
		targetID      int64
		action        string
		want          bool
	}{
		{"diretoria edits anyone", 1, domain.ProfileDiretoria, 10, domain.ActionEdit, true},
		{"diretoria deletes anyone", 5, domain.ProfileDiretoria, 5, domain.ActionDelete, true},
		{"diretoria without target", 0, domain.ProfileDiretoria, 0, domain.ActionEdit, true},
		{"self edit allowed", 1, domain.ProfileAfiliado, 1, domain.ActionEditSelf, true},
		{"other edit denied", 1, domain.ProfileAfiliado, 10, domain.ActionEditSelf, false},
		{"afiliado delete denied", 1, domain.ProfileAfiliado, 10, domain.ActionDelete, false},
		{"absent acting id", 0, domain.ProfileAfiliado, 1, domain.ActionEditSelf, false},
		{"zero target", 1, domain.ProfileAfiliado, 0, domain.ActionEditSelf, false},
		{"gerente edits other", 2, domain.ProfileGerente, 3, domain.ActionEdit, false},
		{"gerente edits self", 2, domain.ProfileGerente, 2, domain.ActionEditSelf, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAuthorized(tt.actingID, tt.actingProfile, tt.targetID, tt.action)
			if got != tt.want {
				t.Fatalf("isAuthorized(%d, %q, %d, %q) = %v, want %v",
					tt.actingID, tt.actingProfile, tt.targetID, tt.action, got, tt.want)
			}
		})
	}
}

func TestSafeView(t *testing.T) {
	original := storedUser()
	safe := safeView(original)

	if safe.CredentialHash != "" {
		t.Fatalf("credential hash not stripped")
	}
	if original.CredentialHash != "HASHED_12345678" {
		t.Fatalf("safeView must not mutate its input")
	}
	if safe.ID != original.ID || safe.Email != original.Email {
		t.Fatalf("safeView altered other fields: %+v", safe)
	}

	if safeView(nil) != nil {
		t.Fatalf("safeView(nil) should be nil")
	}
}

func TestUpdateProfile_Unauthorized(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	_, err := svc.UpdateProfile(context.Background(), 1, domain.ProfileAfiliado, 2, ports.UserChanges{Email: strptr("novo@email.com")})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if len(store.updateCalls) != 0 {
		t.Fatalf("store should not be called")
	}
}

func TestUpdateProfile_AllFields(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	changes := ports.UserChanges{
		Secret:   strptr("nova_senha_valida"),
		Email:    strptr("novo@email.com"),
		FullName: strptr("Novo Nome"),
	}

	msg, err := svc.UpdateProfile(context.Background(), 1, domain.ProfileAfiliado, 1, changes)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if msg != "Usuário atualizado com sucesso!" {
		t.Fatalf("unexpected message: %q", msg)
	}

	if len(store.updateCalls) != 1 {
		t.Fatalf("expected one update call, got %d", len(store.updateCalls))
	}
	call := store.updateCalls[0]
	if call.id != 1 {
		t.Fatalf("unexpected target id: %d", call.id)
	}
	if call.update.CredentialHash == nil || *call.update.CredentialHash != "HASHED_nova_senha_valida" {
		t.Fatalf("secret was not rehashed: %+v", call.update)
	}
	if call.update.Email == nil || *call.update.Email != "novo@email.com" {
		t.Fatalf("email missing from update: %+v", call.update)
	}
	if call.update.FullName == nil || *call.update.FullName != "Novo Nome" {
		t.Fatalf("name missing from update: %+v", call.update)
	}
}

func TestUpdateProfile_FieldValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		changes ports.UserChanges
		want    error
	}{
		{"short secret", ports.UserChanges{Secret: strptr("curta")}, domain.ErrShortNewSecret},
		{"invalid email", ports.UserChanges{Email: strptr("email_curto")}, domain.ErrNewEmailInvalid},
		{"invalid name", ports.UserChanges{FullName: strptr("Nome 42")}, domain.ErrNewNameInvalid},
		{"valid secret then bad email", ports.UserChanges{Secret: strptr("nova_senha"), Email: strptr("ruim")}, domain.ErrNewEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStubStore()
			svc := newTestService(store)

			_, err := svc.UpdateProfile(context.Background(), 1, domain.ProfileAfiliado, 1, tt.changes)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(store.updateCalls) != 0 {
				t.Fatalf("no partial update may reach the store")
			}
		})
	}
}

func TestUpdateProfile_NothingToUpdate(t *testing.T) {
	tests := []struct {
		name    string
		changes ports.UserChanges
	}{
		{"empty changes", ports.UserChanges{}},
		{"blank fields", ports.UserChanges{Secret: strptr(""), Email: strptr(""), FullName: strptr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStubStore()
			svc := newTestService(store)

			_, err := svc.UpdateProfile(context.Background(), 1, domain.ProfileAfiliado, 1, tt.changes)
			if !errors.Is(err, domain.ErrNoUpdates) {
				t.Fatalf("expected ErrNoUpdates, got %v", err)
			}
			if len(store.updateCalls) != 0 {
				t.Fatalf("store should not be called")
			}
		})
	}
}

func TestDelete_RequiresDiretoria(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	for _, profile := range []string{domain.ProfileAfiliado, domain.ProfileGerente, "Visitante", ""} {
		_, err := svc.Delete(context.Background(), profile, 1)
		if !errors.Is(err, domain.ErrDeleteDenied) {
			t.Fatalf("profile %q: expected ErrDeleteDenied, got %v", profile, err)
		}
		if err.Error() != "Acesso Negado: Somente a 'Diretoria' pode deletar usuários." {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	}
	if len(store.deleteCalls) != 0 {
		t.Fatalf("store should never be called")
	}
}

func TestDelete_DiretoriaDelegates(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	msg, err := svc.Delete(context.Background(), domain.ProfileDiretoria, 5)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if msg != "Usuário deletado com sucesso!" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if len(store.deleteCalls) != 1 || store.deleteCalls[0] != 5 {
		t.Fatalf("unexpected delete calls: %v", store.deleteCalls)
	}
}

func TestDelete_StoreOutcomePropagated(t *testing.T) {
	store := newStubStore()
	store.deleteErr = domain.ErrUserNotFound
	svc := newTestService(store)

	_, err := svc.Delete(context.Background(), domain.ProfileDiretoria, 99)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected store error verbatim, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	store := newStubStore()
	store.byID[1] = storedUser()
	svc := newTestService(store)

	user, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if user == nil || user.CredentialHash != "" {
		t.Fatalf("expected sanitized user, got %+v", user)
	}

	missing, err := svc.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("missing user must not be an error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected absence, got %+v", missing)
	}
}

func TestListAll_SanitizesAndDropsNilEntries(t *testing.T) {
	second := &domain.User{
		ID:             2,
		Email:          "user2@dominio.com",
		FullName:       "User Dois",
		AccessProfile:  domain.ProfileDiretoria,
		CredentialHash: "HASHED_senha2",
	}

	store := newStubStore()
	store.all = []*domain.User{storedUser(), nil, second}
	svc := newTestService(store)

	users, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != 1 || users[1].ID != 2 {
		t.Fatalf("order not preserved: %+v", users)
	}
	for _, u := range users {
		if u.CredentialHash != "" {
			t.Fatalf("credential hash leaked for user %d", u.ID)
		}
	}
}
