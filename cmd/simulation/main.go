package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/pkg/serverutils"
	"albi-mall-assistant-be/pkg/events"

	pktNats "albi-mall-assistant-be/pkg/nats"

	"github.com/fatih/color"
)

// Each conversation runs in its own session.
var conversations = [][]string{
	{"red bag under $100"},
	{"show me totes", "under $100", "tell me more"},
	{"do you have Gucci bags?", "ok, show me crossbody bags"},
	{"më trego çanta të zeza nën 150", "diçka më lirë?"},
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000/api/assistant/v1", "assistant API base URL")
	natsURL := flag.String("nats", "", "NATS URL to watch turn events on (optional)")
	flag.Parse()

	color.Cyan("🛍  Albi Mall Assistant Simulation (%s)\n", *baseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *natsURL != "" {
		sub, err := pktNats.NewSubscriber(*natsURL)
		if err != nil {
			color.Red("NATS unavailable: %v", err)
		} else {
			defer sub.Close()
			err = sub.Subscribe(ctx, events.TypeChatTurnCompleted, func(ctx context.Context, event events.Event) error {
				color.Magenta("  [event] %s %v", event.EventType(), event.Payload()["recommended_ids"])
				return nil
			})
			if err != nil {
				color.Red("NATS subscribe failed: %v", err)
			}
		}
	}

	client := &http.Client{Timeout: 30 * time.Second}
	failures := 0

	for i, turns := range conversations {
		color.Yellow("\n[Conversation %d]", i+1)
		sessionID := ""

		for _, text := range turns {
			fmt.Printf("USER: %s\n", text)

			start := time.Now()
			res, err := sendChat(client, *baseURL, dto.ChatRequest{Message: text, SessionID: sessionID})
			elapsed := time.Since(start)
			if err != nil {
				color.Red("  Error: %v", err)
				failures++
				continue
			}
			sessionID = res.SessionID

			color.Green("ASSISTANT (%v): %s", elapsed.Round(time.Millisecond), res.AssistantText)
			for _, p := range res.RecommendedProducts {
				fmt.Printf("  - %s %s (%s)\n", p.ID, p.Title, p.Highlight)
			}
			if res.AuditNotes != "" {
				color.HiBlack("  notes: %s", res.AuditNotes)
			}
		}
	}

	// Give the event watcher a moment to print the last turns.
	if *natsURL != "" {
		time.Sleep(500 * time.Millisecond)
	}

	if failures > 0 {
		color.Red("\n%d turn(s) failed", failures)
		os.Exit(1)
	}
	color.Cyan("\nDone.")
}

func sendChat(client *http.Client, baseURL string, req dto.ChatRequest) (*dto.ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(baseURL+"/chat", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out serverutils.BaseResponse[dto.ChatResponse]
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("%d %s: %s", resp.StatusCode, out.ErrorCode, out.Message)
	}
	return &out.Data, nil
}
