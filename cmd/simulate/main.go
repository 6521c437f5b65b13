package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// simulate drives scripted conversations against a running api, useful for
// smoke testing a provider end to end without the widget.

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
	Vertical  string `json:"vertical,omitempty"`
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type chatData struct {
	SessionID      string   `json:"session_id"`
	Reply          string   `json:"reply"`
	ActionsApplied []string `json:"actions_applied"`
	Appointments   []struct {
		ID       string `json:"id"`
		Datetime string `json:"datetime"`
		Status   string `json:"status"`
	} `json:"appointments"`
	Tickets []struct {
		ID    string `json:"id"`
		Topic string `json:"topic"`
	} `json:"tickets"`
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "api base url")
	vertical := flag.String("vertical", "Dentaire", "business vertical")
	conversations := flag.Int("n", 3, "number of conversations to run")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	client := &http.Client{Timeout: 2 * time.Minute}

	for i := 0; i < *conversations; i++ {
		if err := runConversation(client, *baseURL, *vertical, i); err != nil {
			log.Printf("conversation %d failed: %v", i, err)
		}
	}
}

func runConversation(client *http.Client, baseURL, vertical string, n int) error {
	name := gofakeit.FirstName() + " " + gofakeit.LastName()
	phone := fmt.Sprintf("+41 7%d %03d %02d %02d",
		rand.Intn(4)+6, rand.Intn(1000), rand.Intn(100), rand.Intn(100))

	script := []string{
		"Bonjour, j'aimerais prendre rendez-vous.",
		fmt.Sprintf("Je m'appelle %s, mon numéro est %s. Le premier créneau me va.", name, phone),
		"Finalement je préfère le créneau suivant, pouvez-vous le déplacer ?",
	}
	if rand.Intn(2) == 0 {
		script = append(script, "J'ai aussi une question sur les tarifs, quelqu'un peut-il me rappeler ?")
	}

	log.Printf("conversation=%d patient=%q", n, name)

	sessionID := ""
	for turn, msg := range script {
		data, err := sendTurn(client, baseURL, chatRequest{
			SessionID: sessionID,
			Message:   msg,
			Vertical:  vertical,
		})
		if err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
		sessionID = data.SessionID

		log.Printf("conversation=%d turn=%d applied=%v appointments=%d tickets=%d",
			n, turn, data.ActionsApplied, len(data.Appointments), len(data.Tickets))
		log.Printf("conversation=%d turn=%d reply=%q", n, turn, data.Reply)

		time.Sleep(time.Duration(500+rand.Intn(1000)) * time.Millisecond)
	}
	return nil
}

func sendTurn(client *http.Client, baseURL string, req chatRequest) (*chatData, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(baseURL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("api error code=%d message=%s", env.Code, env.Message)
	}

	var data chatData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
