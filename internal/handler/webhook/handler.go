package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nabrah/usage-alert-service/internal/service"
	"github.com/nabrah/usage-alert-service/internal/service/dto"
)

type Handler struct {
	dispatcher service.Dispatcher
	logger     *slog.Logger
}

func NewHandler(dispatcher service.Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// HandleEvent ingests one OpenMeter notification delivery.
//
// Contract with the metering service: every parseable event is acknowledged
// with 200 and an empty body, whatever happened downstream, so failed email
// deliveries never turn into redelivery storms. Only a fundamentally
// unparsable body earns a 400.
func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var payload dto.EventV1
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("WEBHOOK_BODY_UNPARSABLE",
			"err", err,
			"request_id", chimw.GetReqID(r.Context()),
		)
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	ev := payload.ToDomain()
	disposition := h.dispatcher.Dispatch(r.Context(), ev)

	h.logger.Info("WEBHOOK_HANDLED",
		"type", string(ev.Type),
		"event_id", ev.ID,
		"disposition", disposition.String(),
		"request_id", chimw.GetReqID(r.Context()),
	)

	w.WriteHeader(http.StatusOK)
}

// HandleHealth answers liveness probes.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
