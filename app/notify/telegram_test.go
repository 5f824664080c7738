package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTelegramClient_Send(t *testing.T) {
	var gotPath string
	var gotRequest sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewTelegramClient(server.Client(), "test-token", "12345", 5*time.Second, true)
	client.apiBase = server.URL

	if err := client.Send(context.Background(), "<b>hello</b>"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("Unexpected request path: %q", gotPath)
	}
	if gotRequest.ChatID != "12345" {
		t.Errorf("Expected chat_id '12345', got %q", gotRequest.ChatID)
	}
	if gotRequest.Text != "<b>hello</b>" {
		t.Errorf("Unexpected message text: %q", gotRequest.Text)
	}
	if gotRequest.ParseMode != "HTML" {
		t.Errorf("Expected HTML parse mode, got %q", gotRequest.ParseMode)
	}
	if !gotRequest.DisableWebPagePreview {
		t.Error("Expected link preview to be disabled")
	}
}

func TestTelegramClient_Send_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client := NewTelegramClient(server.Client(), "test-token", "12345", 5*time.Second, false)
	client.apiBase = server.URL

	if err := client.Send(context.Background(), "hello"); err == nil {
		t.Fatal("Expected error for ok:false response")
	}
}

func TestTelegramClient_Send_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force connection refused

	client := NewTelegramClient(http.DefaultClient, "test-token", "12345", time.Second, false)
	client.apiBase = server.URL

	if err := client.Send(context.Background(), "hello"); err == nil {
		t.Fatal("Expected error for unreachable API")
	}
}
