package webhook

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/ranobe-bot/internal/adapter/inbound/webhook/middleware"
	"github.com/jonny/ranobe-bot/internal/domain/port/inbound"
	"github.com/jonny/ranobe-bot/pkg/apierror"
)

// Handler answers verified interaction requests.
type Handler struct {
	port   inbound.InteractionPort
	logger *slog.Logger
}

// NewHandler creates a new Handler that dispatches through port.
func NewHandler(port inbound.InteractionPort, logger *slog.Logger) *Handler {
	return &Handler{port: port, logger: logger}
}

// ServeHTTP handles one interaction:
// 1. Decodes the verified body into a domain interaction.
// 2. Dispatches it, which schedules any follow-up work.
// 3. Writes the acknowledgment.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, ok := middleware.RawBody(r)
	if !ok {
		apierror.Write(w, apierror.Internal("request body not available"))
		return
	}

	in, err := Decode(body)
	if err != nil {
		h.logger.Debug("interaction not recognized", "error", err)
		apierror.Write(w, apierror.NotFound("interaction"))
		return
	}

	ack, err := h.port.Dispatch(r.Context(), in)
	switch {
	case errors.Is(err, inbound.ErrUnknownInteraction):
		apierror.Write(w, apierror.NotFound("interaction"))
		return
	case errors.Is(err, inbound.ErrOverloaded):
		apierror.Write(w, apierror.ServiceUnavailable("interaction could not be scheduled"))
		return
	case err != nil:
		h.logger.Error("dispatch failed", "interaction_id", in.Meta().ID, "error", err)
		apierror.Write(w, apierror.Internal("dispatch failed"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseType(ack),
	})
}
