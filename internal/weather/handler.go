package weather

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/arkadyv/noteboard/internal/httperr"
)

type Handler struct {
	svc    *WeatherService
	logger *zap.SugaredLogger
}

func NewHandler(svc *WeatherService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lon := q.Get("lat"), q.Get("lon")
	if lat == "" || lon == "" {
		httperr.Write(w, h.logger, httperr.Validation("Missing required fields: lat or lon"))
		return
	}
	body, err := h.svc.Fetch(r.Context(), lat, lon)
	if err != nil {
		h.logger.Errorw("weather lookup failed", "err", err)
		httperr.Write(w, h.logger, httperr.Internal())
		return
	}
	httperr.WriteOK(w, http.StatusOK, "weather", json.RawMessage(body), "Weather retrieved successfully")
}
