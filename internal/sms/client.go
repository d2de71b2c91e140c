// internal/sms/client.go
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client talks to a Clickatell-style SMS gateway. It is the fallback
// channel: one attempt per call, no retries.
type Client struct {
	APIURL string
	APIKey string
	From   string
	HTTP   *http.Client
	Log    *zap.Logger
}

func NewClient(apiURL, apiKey, from string, log *zap.Logger) *Client {
	return &Client{
		APIURL: apiURL,
		APIKey: apiKey,
		From:   from,
		HTTP:   &http.Client{Timeout: 10 * time.Second},
		Log:    log,
	}
}

type payload struct {
	Content string   `json:"content"`
	To      []string `json:"to"`
	From    string   `json:"from,omitempty"`
}

func (c *Client) SendText(ctx context.Context, tenantID int, phone, text string) error {
	if c.APIKey == "" {
		return fmt.Errorf("sms api key not configured")
	}

	body, err := json.Marshal(payload{Content: text, To: []string{phone}, From: c.From})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("sms api status %d: %s", resp.StatusCode, string(respBody))
	}

	c.Log.Info("sms sent",
		zap.Int("tenant_id", tenantID),
		zap.String("phone", phone),
	)
	return nil
}
