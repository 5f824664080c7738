package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier is the outbound notification sink consumed by the watcher.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

var _ Notifier = (*TelegramClient)(nil)

// TelegramClient delivers messages through the Telegram Bot API using HTML
// parse mode.
type TelegramClient struct {
	httpClient     *http.Client
	apiBase        string
	token          string
	chatID         string
	timeout        time.Duration
	disablePreview bool
}

func NewTelegramClient(httpClient *http.Client, token, chatID string, timeout time.Duration, disablePreview bool) *TelegramClient {
	return &TelegramClient{
		httpClient:     httpClient,
		apiBase:        defaultAPIBase,
		token:          token,
		chatID:         chatID,
		timeout:        timeout,
		disablePreview: disablePreview,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *TelegramClient) Send(ctx context.Context, message string) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  message,
		ParseMode:             "HTML",
		DisableWebPagePreview: c.disablePreview,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	req, err := http.NewRequestWithContext(timeoutCtx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var result sendMessageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("unexpected response (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		return fmt.Errorf("Telegram API error (HTTP %d): %s", resp.StatusCode, result.Description)
	}

	return nil
}
