package note

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/arkadyv/noteboard/internal/auth"
	"github.com/arkadyv/noteboard/internal/httperr"
)

const defaultTake = 10

// Handler exposes HTTP endpoints for the todo resource. Every endpoint runs
// behind the auth gate and scopes its work to the verified caller uid.
type Handler struct {
	svc    *NoteService
	logger *zap.SugaredLogger
}

func NewHandler(svc *NoteService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest request body for the create endpoint.
type CreateRequest struct {
	Body string          `json:"body"`
	Data json.RawMessage `json:"data"`
	At   *int64          `json:"at"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		httperr.Write(w, h.logger, httperr.Auth("Unauthenticated"))
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, h.logger, httperr.Validation("Missing required field: body"))
		return
	}
	n, err := h.svc.Create(r.Context(), claims.UID, req.Body, req.Data, req.At)
	if err != nil {
		httperr.Write(w, h.logger, err)
		return
	}
	httperr.WriteOK(w, http.StatusCreated, "todo", n, "Todo created successfully")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		httperr.Write(w, h.logger, httperr.Auth("Unauthenticated"))
		return
	}
	id := r.PathValue("id")
	if id == "" {
		httperr.Write(w, h.logger, httperr.Validation("Missing required field: id"))
		return
	}
	n, err := h.svc.Get(r.Context(), claims.UID, id)
	if err != nil {
		httperr.Write(w, h.logger, err)
		return
	}
	httperr.WriteOK(w, http.StatusOK, "todo", n, "Todo retrieved successfully")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		httperr.Write(w, h.logger, httperr.Auth("Unauthenticated"))
		return
	}
	q := r.URL.Query()
	from, err1 := strconv.ParseInt(q.Get("from"), 10, 64)
	to, err2 := strconv.ParseInt(q.Get("to"), 10, 64)
	if err1 != nil || err2 != nil {
		httperr.Write(w, h.logger, httperr.Validation("Missing required fields: from or to"))
		return
	}
	skip := 0
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httperr.Write(w, h.logger, httperr.Validation("Field skip must be a non-negative integer"))
			return
		}
		skip = n
	}
	take := defaultTake
	if v := q.Get("take"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httperr.Write(w, h.logger, httperr.Validation("Field take must be a non-negative integer"))
			return
		}
		take = n
	}
	notes, err := h.svc.List(r.Context(), claims.UID, from, to, skip, take)
	if err != nil {
		httperr.Write(w, h.logger, err)
		return
	}
	httperr.WriteOK(w, http.StatusOK, "todos", notes, "Todos retrieved successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		httperr.Write(w, h.logger, httperr.Auth("Unauthenticated"))
		return
	}
	id := r.PathValue("id")
	if id == "" {
		httperr.Write(w, h.logger, httperr.Validation("Missing required field: id"))
		return
	}
	deleted, err := h.svc.Delete(r.Context(), claims.UID, id)
	if err != nil {
		httperr.Write(w, h.logger, err)
		return
	}
	httperr.WriteOK(w, http.StatusOK, "deleted", deleted, "Todos deleted")
}
