package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/auth"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/response"
)

type AccountHandler struct {
	svc *auth.Service
}

func NewAccountHandler(svc *auth.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		recordRegistration(err)
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		recordRegistration(err)
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		recordRegistration(err)
		response.WriteError(w, r, err)
		return
	}
	recordRegistration(nil)

	logger.WithCtx(r.Context()).Info().
		Str("account_id", res.Account.ID).
		Str("role", res.Account.Role).
		Msg("account_registered")

	response.OK(w, dto.RegisterResponse{
		Token:     res.Token.Token,
		TokenType: res.Token.TokenType,
		ExpiresIn: res.Token.ExpiresIn,
		User:      res.Account,
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		recordLogin(err)
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		recordLogin(err)
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		recordLogin(err)
		response.WriteError(w, r, err)
		return
	}
	recordLogin(nil)

	response.OK(w, dto.LoginResponse{
		Token:      res.Token.Token,
		TokenType:  res.Token.TokenType,
		ExpiresIn:  res.Token.ExpiresIn,
		ProfilePic: res.Profile.ProfilePic,
	})
}

// ListUsers handles GET /users
func (h *AccountHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, list)
}

// DeleteUser handles DELETE /user/{id}
func (h *AccountHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("account_id", res.ID).
		Msg("account_deleted")

	response.OK(w, dto.DeleteResponse{Message: "account deleted", ID: res.ID})
}
