package domain

import (
	"errors"
	"time"
)

// Access profiles. The values are user-facing and double as the
// authorization vocabulary, so they stay in Portuguese.
const (
	ProfileAfiliado  = "Afiliado"
	ProfileGerente   = "Gerente"
	ProfileDiretoria = "Diretoria"
)

// Authorization action tags understood by the account service policy.
const (
	ActionEdit     = "edit"
	ActionEditSelf = "edit_self"
	ActionDelete   = "delete"
)

// ValidProfile reports whether p is one of the three known access profiles.
func ValidProfile(p string) bool {
	return p == ProfileAfiliado || p == ProfileGerente || p == ProfileDiretoria
}

// User is the account aggregate. CredentialHash never leaves the store
// boundary: the service blanks it before returning a record to any caller.
type User struct {
	ID             int64     `json:"id" bson:"_id"`
	Email          string    `json:"email" bson:"email"`
	FullName       string    `json:"full_name" bson:"full_name"`
	AccessProfile  string    `json:"access_profile" bson:"access_profile"`
	CredentialHash string    `json:"-" bson:"credential_hash"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// Error texts are the stable user-facing message set. Tests pin them
// verbatim; treat any change as a breaking API change.
var (
	ErrInvalidEmail     = errors.New("Erro: Email inválido!")
	ErrInvalidName      = errors.New("Erro: Nome completo deve conter apenas letras.")
	ErrInvalidSecret    = errors.New("Erros: senha inválida.")
	ErrInvalidProfile   = errors.New("Erro: Perfil de acesso inválido.")
	ErrEmptyCredentials = errors.New("Erro: Email e senha não podem ser vazios.")

	// ErrInvalidCredentials covers both unknown email and wrong secret so a
	// caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("Erro: Email ou senha inválidos.")

	ErrAccessDenied    = errors.New("Acesso Negado!")
	ErrDeleteDenied    = errors.New("Acesso Negado: Somente a 'Diretoria' pode deletar usuários.")
	ErrNoUpdates       = errors.New("Nenhum dado válido para atualização fornecido.")
	ErrShortNewSecret  = errors.New("Erro: A nova senha deve ter no mínimo 8 caracteres.")
	ErrNewEmailInvalid = errors.New("Erro: O novo email é inválido.")
	ErrNewNameInvalid  = errors.New("Erro: O novo nome deve conter apenas letras.")

	// Store outcomes.
	ErrEmailTaken   = errors.New("Erro: Email já cadastrado.")
	ErrUserNotFound = errors.New("Erro: Usuário não encontrado.")
)

// Success messages owned by the store and the login flow.
const (
	MsgUserCreated = "Usuário criado com sucesso!"
	MsgUserUpdated = "Usuário atualizado com sucesso!"
	MsgUserDeleted = "Usuário deletado com sucesso!"
	MsgLoginOK     = "Login bem-sucedido!"
)
