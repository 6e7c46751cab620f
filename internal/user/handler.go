package user

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/arkadyv/noteboard/internal/auth"
	"github.com/arkadyv/noteboard/internal/httperr"
)

// Handler exposes HTTP endpoints for user operations (register / login).
type Handler struct {
	svc    *UserService
	secret []byte
	logger *zap.SugaredLogger
}

func NewHandler(svc *UserService, secret []byte, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, secret: secret, logger: logger}
}

// RegisterRequest request body for the register endpoint.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, h.logger, httperr.Validation("Missing required fields: username, password or name"))
		return
	}
	u, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		httperr.Write(w, h.logger, err)
		return
	}
	token, err := auth.IssueToken(h.secret, u.UID, u.Email, u.Name)
	if err != nil {
		h.logger.Errorw("token issuance failed", "err", err)
		httperr.Write(w, h.logger, httperr.Internal())
		return
	}
	h.logger.Infow("user registered", "uid", u.UID)
	httperr.WriteOK(w, http.StatusCreated, "token", token, "User created successfully")
}

// LoginRequest request body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, h.logger, httperr.Validation("Missing required fields: username or password"))
		return
	}
	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debugw("login failed", "err", err)
		httperr.Write(w, h.logger, err)
		return
	}
	token, err := auth.IssueToken(h.secret, u.UID, u.Email, u.Name)
	if err != nil {
		h.logger.Errorw("token issuance failed", "err", err)
		httperr.Write(w, h.logger, httperr.Internal())
		return
	}
	httperr.WriteOK(w, http.StatusOK, "token", token, "Login successful")
}
