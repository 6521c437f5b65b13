package handlers

import (
	"fmt"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

const voiceGather = `  <Gather input="speech" language="fr-FR" action="/api/voice" method="POST" timeout="5" speechTimeout="auto">
    <Say voice="Polly.Lea" language="fr-FR">Je vous écoute.</Say>
  </Gather>`

// voiceTwiML speaks the reply and keeps listening. withFallback adds the
// "didn't hear you" closer used on the first hit of a call.
func voiceTwiML(reply string, withFallback bool) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<Response>\n")
	fmt.Fprintf(&b, "  <Say voice=\"Polly.Lea\" language=\"fr-FR\">%s</Say>\n", xmlEscape(reply))
	b.WriteString(voiceGather)
	b.WriteString("\n")
	if withFallback {
		fmt.Fprintf(&b, "  <Say voice=\"Polly.Lea\" language=\"fr-FR\">%s</Say>\n",
			xmlEscape("Je n'ai pas bien entendu. Pouvez-vous répéter ?"))
	}
	b.WriteString("</Response>")
	return b.String()
}

func messageTwiML(reply string) string {
	return fmt.Sprintf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<Response>\n  <Message>%s</Message>\n</Response>",
		xmlEscape(reply))
}
