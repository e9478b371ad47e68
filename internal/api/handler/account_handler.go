package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alexdiasritter/softex-curso/internal/api/metrics"
	"github.com/alexdiasritter/softex-curso/internal/core/domain"
	"github.com/alexdiasritter/softex-curso/internal/core/ports"
)

// LoginThrottle bounds failed login attempts per email (Redis in production).
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type AccountHandler struct {
	accounts  ports.AccountService
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAccountHandler(accounts ports.AccountService, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts:  accounts,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.accounts.Register(c.Request().Context(), req.Secret, req.Email, req.FullName, req.Profile)
	if err != nil {
		reason := "validation"
		if errors.Is(err, domain.ErrEmailTaken) {
			reason = "store"
		}
		metrics.RegistrationFailuresTotal.WithLabelValues(reason).Inc()
		return err
	}

	profile := req.Profile
	if profile == "" {
		profile = domain.ProfileAfiliado
	}
	metrics.RegistrationsTotal.WithLabelValues(profile).Inc()

	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// Login authenticates an account and returns a JWT session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()

	if req.Email != "" {
		blocked, err := h.throttle.Blocked(ctx, req.Email)
		if err != nil {
			h.log.Warn().Err(err).Msg("throttle check failed, allowing attempt")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many failed login attempts")
		}
	}

	user, err := h.accounts.Authenticate(ctx, req.Email, req.Secret)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if terr := h.throttle.RecordFailure(ctx, req.Email); terr != nil {
				h.log.Warn().Err(terr).Msg("failed to record login failure")
			}
		}
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	if err := h.throttle.Reset(ctx, req.Email); err != nil {
		h.log.Warn().Err(err).Msg("failed to reset login throttle")
	}

	token, err := issueToken(user, h.jwtSecret, h.tokenTTL)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:   token,
		User:    user,
		Message: domain.MsgLoginOK,
	})
}

// Update applies a partial profile update to the target account.
//
// @Summary      Update an account profile
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Target account id"
// @Param        body  body      updateRequest  true  "Fields to update"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	targetID, err := pathID(c)
	if err != nil {
		return err
	}
	actingID, actingProfile, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.accounts.UpdateProfile(c.Request().Context(), actingID, actingProfile, targetID, req.toChanges())
	if err != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.ProfileUpdatesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// Delete removes the target account. Only Diretoria may delete.
//
// @Summary      Delete an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Target account id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	targetID, err := pathID(c)
	if err != nil {
		return err
	}
	_, actingProfile, err := ctxClaims(c)
	if err != nil {
		return err
	}

	msg, err := h.accounts.Delete(c.Request().Context(), actingProfile, targetID)
	if err != nil {
		metrics.DeletionsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.DeletionsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// GetByID returns a single sanitized account.
//
// @Summary      Get an account by id
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Account id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /accounts/{id} [get]
func (h *AccountHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	return c.JSON(http.StatusOK, user)
}

// List returns every account, sanitized.
//
// @Summary      List all accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse
// @Failure      403  {object}  map[string]string
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	users, err := h.accounts.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse{Users: users, Total: len(users)})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid account id")
	}
	return id, nil
}
