// internal/service/delivery.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
)

// TextSender is the opaque send capability of a single channel.
type TextSender interface {
	SendText(ctx context.Context, tenantID int, phone, text string) error
}

// ImageSender is implemented by channels that can attach media (WhatsApp).
type ImageSender interface {
	SendImage(ctx context.Context, tenantID int, phone, imageURL, caption string) error
}

// Outcome reports which channel ultimately delivered a message.
type Outcome struct {
	Method model.DeliveryMethod
	// WhatsAppFailureReason is set whenever the WhatsApp attempt failed,
	// regardless of whether the SMS fallback then succeeded.
	WhatsAppFailureReason string
	// Err is the terminal error when both channels failed. It carries the
	// WhatsApp reason; the SMS failure is not separately modeled.
	Err error
}

func (o Outcome) Delivered() bool {
	return o.Method != model.MethodNone
}

// DeliveryChannel is the seam the scheduler sends through.
type DeliveryChannel interface {
	Send(ctx context.Context, tenantID int, phone, content, mediaURL string) Outcome
}

// FallbackChannel attempts WhatsApp first and falls back to SMS once. It
// never retries beyond that single chain; repeated attempts across scheduler
// runs are governed by the row's retry bookkeeping, not by this component.
type FallbackChannel struct {
	WhatsApp TextSender
	SMS      TextSender
	Timeout  time.Duration
	Log      *zap.Logger
}

func (c *FallbackChannel) Send(ctx context.Context, tenantID int, phone, content, mediaURL string) Outcome {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	waErr := c.sendWhatsApp(ctx, tenantID, phone, content, mediaURL)
	if waErr == nil {
		return Outcome{Method: model.MethodWhatsApp}
	}

	c.Log.Warn("whatsapp send failed, falling back to sms",
		zap.Int("tenant_id", tenantID),
		zap.String("phone", phone),
		zap.Error(waErr),
	)

	if c.SMS != nil {
		if smsErr := c.SMS.SendText(ctx, tenantID, phone, content); smsErr == nil {
			return Outcome{
				Method:                model.MethodWhatsAppFailedToSMS,
				WhatsAppFailureReason: waErr.Error(),
			}
		} else {
			c.Log.Error("sms fallback failed",
				zap.Int("tenant_id", tenantID),
				zap.String("phone", phone),
				zap.Error(smsErr),
			)
		}
	}

	return Outcome{
		Method:                model.MethodNone,
		WhatsAppFailureReason: waErr.Error(),
		Err:                   waErr,
	}
}

func (c *FallbackChannel) sendWhatsApp(ctx context.Context, tenantID int, phone, content, mediaURL string) error {
	if mediaURL != "" {
		if img, ok := c.WhatsApp.(ImageSender); ok {
			return img.SendImage(ctx, tenantID, phone, mediaURL, content)
		}
	}
	return c.WhatsApp.SendText(ctx, tenantID, phone, content)
}

var _ DeliveryChannel = (*FallbackChannel)(nil)
