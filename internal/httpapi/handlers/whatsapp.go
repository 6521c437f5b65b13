package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// WhatsApp is the Twilio WhatsApp webhook. Replies with Message TwiML.
func (h *Handler) WhatsApp(c *gin.Context) {
	from := c.PostForm("From")
	to := c.PostForm("To")
	body := strings.TrimSpace(c.PostForm("Body"))

	reply, err := h.Turns.WhatsAppReply(c.Request.Context(), from, to, body)
	if err != nil {
		log.Printf("whatsapp turn failed from=%s err=%v", from, err)
		c.Data(http.StatusInternalServerError, "text/xml; charset=utf-8",
			[]byte(messageTwiML("Désolé, un souci technique. Réessayez dans un instant.")))
		return
	}

	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(messageTwiML(reply)))
}
