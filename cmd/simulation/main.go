package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const baseURL = "http://localhost:3000/api/chat/v1"

// Simplified DTOs for the script
type chatMessage struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

type chatRequest struct {
	SessionID string        `json:"session_id,omitempty"`
	UserID    string        `json:"user_id"`
	Messages  []chatMessage `json:"messages"`
}

type chatResponse struct {
	Data struct {
		SessionID       string   `json:"session_id"`
		Text            string   `json:"text"`
		ActiveAgent     string   `json:"active_agent"`
		ConsultedAgents []string `json:"consulted_agents"`
		FollowUpOptions []string `json:"follow_up_options"`
	} `json:"data"`
}

func main() {
	fmt.Println("=== Card Support Simulation Client ===")

	testCases := []string{
		"What is the annual fee on my corporate card?",
		"What's my current balance?",
		"Show my recent transactions",
		"Give me a spending breakdown by category",
		"I think there's a fraudulent charge on my card",
		"Skip the questions, escalate now",
	}

	sessionID := ""
	var history []chatMessage

	for _, text := range testCases {
		fmt.Printf("\nUSER: %s\n", text)
		history = append(history, chatMessage{Text: text, IsUser: true})

		start := time.Now()
		reply, err := sendChat(sessionID, history)
		elapsed := time.Since(start)

		if err != nil {
			log.Fatalf("Send failed: %v", err)
		}

		sessionID = reply.Data.SessionID
		history = append(history, chatMessage{Text: reply.Data.Text})

		fmt.Printf("ASSISTANT [%s] (%v):\n%s\n", reply.Data.ActiveAgent, elapsed, reply.Data.Text)
		if len(reply.Data.ConsultedAgents) > 1 {
			fmt.Printf("  consulted: %v\n", reply.Data.ConsultedAgents)
		}
		if len(reply.Data.FollowUpOptions) > 0 {
			fmt.Printf("  follow-ups: %v\n", reply.Data.FollowUpOptions)
		}

		// Small delay to allow async logs to flush on server side
		time.Sleep(1 * time.Second)
	}
}

func sendChat(sessionID string, history []chatMessage) (*chatResponse, error) {
	payload := chatRequest{
		SessionID: sessionID,
		UserID:    "sim-user",
		Messages:  history,
	}
	jsonBytes, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", baseURL, bytes.NewBuffer(jsonBytes))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API Error %d: %s", resp.StatusCode, string(body))
	}

	var res chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
