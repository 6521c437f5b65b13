package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/common"
)

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
	Vertical  string `json:"vertical"`
}

// Chat runs one conversation turn. A missing or unknown session_id opens a
// fresh session; the response always echoes the id so the client can stick to
// it.
func (h *Handler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	vertical := strings.TrimSpace(req.Vertical)
	if vertical == "" {
		vertical = "Dentaire"
	}

	sess, err := h.Sessions.GetOrCreate(c.Request.Context(), strings.TrimSpace(req.SessionID))
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to open session")
		return
	}

	// One in-flight turn per session.
	sess.Lock()
	defer sess.Unlock()

	res, err := h.Turns.ProcessTurn(c.Request.Context(), sess.ID, sess.Ledger, vertical, req.Message)
	if err != nil {
		log.Printf("turn failed session=%s err=%v", sess.ID, err)
		common.Fail(c, http.StatusBadGateway, 50201, "assistant unavailable")
		return
	}

	h.Sessions.Snapshot(c.Request.Context(), sess)

	common.OK(c, gin.H{
		"session_id":      sess.ID,
		"reply":           res.Reply,
		"actions_applied": res.ActionsApplied,
		"appointments":    res.Appointments,
		"tickets":         res.Tickets,
		"slots":           res.Slots,
	})
}
