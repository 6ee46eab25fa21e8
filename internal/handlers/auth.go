package handlers

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/httpx"
	"github.com/nikolayk812/storefront/internal/service"
)

type AuthHandler struct {
	svc *service.Auth
}

func NewAuthHandler(svc *service.Auth) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	user, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context())
	httpx.WriteNoContent(w)
}
