package handler

import (
	"github.com/alexdiasritter/softex-curso/internal/core/domain"
	"github.com/alexdiasritter/softex-curso/internal/core/ports"
)

type registerRequest struct {
	Secret   string `json:"secret" validate:"required"`
	Email    string `json:"email" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Profile  string `json:"profile" validate:"omitempty,oneof=Afiliado Gerente Diretoria"`
}

// loginRequest deliberately carries no validate tags: empty credentials must
// reach the account service so its own empty-credentials outcome is the one
// reported.
type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

// updateRequest mirrors ports.UserChanges: absent fields stay nil.
type updateRequest struct {
	Secret   *string `json:"secret"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

func (r updateRequest) toChanges() ports.UserChanges {
	return ports.UserChanges{
		Secret:   r.Secret,
		Email:    r.Email,
		FullName: r.FullName,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}

type listResponse struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
}
