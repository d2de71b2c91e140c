// internal/whatsapp/client.go
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// chunkLimit stays under WhatsApp's 1600-character message cap.
const chunkLimit = 1500

// Client talks to the WhatsApp Cloud API.
type Client struct {
	APIURL        string
	PhoneNumberID string
	AccessToken   string
	HTTP          *http.Client
	Limiter       *rate.Limiter
	Log           *zap.Logger
}

func NewClient(apiURL, phoneNumberID, accessToken string, ratePerSec int, log *zap.Logger) *Client {
	if ratePerSec <= 0 {
		ratePerSec = 10
	}
	return &Client{
		APIURL:        apiURL,
		PhoneNumberID: phoneNumberID,
		AccessToken:   accessToken,
		HTTP:          &http.Client{Timeout: 10 * time.Second},
		Limiter:       rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		Log:           log,
	}
}

type textPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

type imagePayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Image            struct {
		Link    string `json:"link"`
		Caption string `json:"caption,omitempty"`
	} `json:"image"`
}

// SendText posts a text message, splitting long bodies into chunks. The
// tenant id is accepted for interface symmetry; credentials are deployment
// wide.
func (c *Client) SendText(ctx context.Context, tenantID int, phone, text string) error {
	chunks := splitIntoChunks(text, chunkLimit)

	for i, chunk := range chunks {
		var p textPayload
		p.MessagingProduct = "whatsapp"
		p.To = phone
		p.Type = "text"
		p.Text.Body = chunk

		if err := c.post(ctx, p); err != nil {
			return fmt.Errorf("message part %d/%d: %w", i+1, len(chunks), err)
		}
	}

	c.Log.Info("whatsapp message sent",
		zap.Int("tenant_id", tenantID),
		zap.String("phone", phone),
		zap.Int("parts", len(chunks)),
	)
	return nil
}

// SendImage posts an image with an optional caption.
func (c *Client) SendImage(ctx context.Context, tenantID int, phone, imageURL, caption string) error {
	var p imagePayload
	p.MessagingProduct = "whatsapp"
	p.To = phone
	p.Type = "image"
	p.Image.Link = imageURL
	p.Image.Caption = caption

	if err := c.post(ctx, p); err != nil {
		return err
	}

	c.Log.Info("whatsapp image sent",
		zap.Int("tenant_id", tenantID),
		zap.String("phone", phone),
	)
	return nil
}

func (c *Client) post(ctx context.Context, payload any) error {
	if err := c.Limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.APIURL, c.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// splitIntoChunks breaks text on line boundaries where possible so multi-part
// messages stay readable.
func splitIntoChunks(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	remaining := text
	for len(remaining) > limit {
		cut := strings.LastIndexByte(remaining[:limit], '\n')
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimRight(remaining[:cut], "\n"))
		remaining = strings.TrimLeft(remaining[cut:], "\n")
	}
	if remaining != "" {
		chunks = append(chunks, remaining)
	}
	return chunks
}
