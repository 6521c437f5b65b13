package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/common"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/config"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/frontdesk"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/session"
)

type Handler struct {
	Cfg      config.Config
	Sessions *session.Manager
	Turns    *frontdesk.Service
}

func NewHandler(cfg config.Config, sessions *session.Manager, turns *frontdesk.Service) *Handler {
	return &Handler{Cfg: cfg, Sessions: sessions, Turns: turns}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"message": "pong"})
}

// ResetSession drops a session's ledger, the API form of the demo's reset
// button.
func (h *Handler) ResetSession(c *gin.Context) {
	id := c.Param("session_id")
	if id == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "session_id required")
		return
	}
	h.Sessions.Delete(c.Request.Context(), id)
	common.OK(c, gin.H{"session_id": id})
}
