package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Voice is the Twilio voice webhook. Twilio posts form fields; the reply is
// TwiML that speaks the answer and gathers the next utterance.
func (h *Handler) Voice(c *gin.Context) {
	speech := strings.TrimSpace(c.PostForm("SpeechResult"))
	digits := strings.TrimSpace(c.PostForm("Digits"))

	userText := speech
	if userText == "" && digits != "" {
		userText = "Le client a tapé: " + digits
	}

	if userText == "" {
		// First hit of the call, nothing said yet.
		twiml := voiceTwiML("Bonjour, ici l'accueil. Dites-moi en quelques mots ce que je peux faire pour vous.", true)
		c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(twiml))
		return
	}

	reply, err := h.Turns.VoiceReply(c.Request.Context(), userText)
	if err != nil {
		log.Printf("voice turn failed err=%v", err)
		c.Data(http.StatusInternalServerError, "text/xml; charset=utf-8",
			[]byte(voiceTwiML("Désolé, un souci technique. Rappelez-nous dans un instant.", false)))
		return
	}

	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(voiceTwiML(reply, false)))
}
