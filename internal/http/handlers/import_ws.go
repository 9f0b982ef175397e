package handlers

import (
	"net/http"
	"time"

	"harborcrm/internal/services"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ImportProgressWS streams import progress snapshots over a websocket
type ImportProgressWS struct {
	sessionService *services.ImportSessionService
	upgrader       websocket.Upgrader
	interval       time.Duration
}

// NewImportProgressWS creates a new websocket progress handler
func NewImportProgressWS(sessionService *services.ImportSessionService) *ImportProgressWS {
	return &ImportProgressWS{
		sessionService: sessionService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		interval: time.Second,
	}
}

// Stream godoc
// @Summary Stream import progress
// @Description Push progress snapshots once per second until the session is terminal
// @Tags import
// @Param id path string true "Session ID"
// @Router /import/sessions/{id}/ws [get]
func (h *ImportProgressWS) Stream(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid session id"})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("Websocket upgrade failed")
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		progress, err := h.sessionService.GetProgress(ctx, workspaceID, sessionID)
		if err != nil {
			conn.WriteJSON(map[string]string{"error": "failed to load progress"})
			return nil
		}
		if progress == nil {
			conn.WriteJSON(map[string]string{"error": "session not found"})
			return nil
		}

		if err := conn.WriteJSON(progress); err != nil {
			log.Debug().Err(err).
				Str("session_id", sessionID.String()).
				Msg("Websocket client disconnected")
			return nil
		}

		if progress.Status.Terminal() {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
