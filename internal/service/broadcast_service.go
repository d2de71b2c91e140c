// internal/service/broadcast_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tshekom8206/staybotplatform-sub005/internal/metrics"
	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
	"github.com/tshekom8206/staybotplatform-sub005/internal/queue"
	"github.com/tshekom8206/staybotplatform-sub005/internal/repository"
)

// BroadcastService fans one-off announcements out to guests through the send
// queue; the worker drains the queue recipient by recipient.
type BroadcastService struct {
	Broadcasts repository.BroadcastRepositoryInterface
	Bookings   repository.BookingRepositoryInterface
	Delivery   DeliveryChannel
	Queue      queue.Queue
	Topic      string
	Log        *zap.Logger
}

type SendBroadcastResult struct {
	BroadcastID      int    `json:"broadcast_id"`
	RecipientsQueued int    `json:"recipients_queued"`
	Status           string `json:"status"`
}

var broadcastTypes = map[string]bool{
	model.BroadcastEmergency:    true,
	model.BroadcastPowerOutage:  true,
	model.BroadcastWaterOutage:  true,
	model.BroadcastInternetDown: true,
	model.BroadcastCustom:       true,
}

// SendBroadcast resolves the scope to recipients, persists the broadcast and
// one recipient row per guest, and enqueues every recipient.
func (s *BroadcastService) SendBroadcast(ctx context.Context, tenantID int, messageType, content, scope string) (*SendBroadcastResult, error) {
	if !broadcastTypes[messageType] {
		return nil, fmt.Errorf("unrecognized broadcast type: %s", messageType)
	}
	if content == "" {
		return nil, fmt.Errorf("broadcast content cannot be empty")
	}
	if scope == "" {
		scope = model.ScopeActiveOnly
	}

	bookings, err := s.Bookings.ListForBroadcast(ctx, tenantID, scope)
	if err != nil {
		return nil, err
	}

	bc := &model.BroadcastMessage{
		TenantID:        tenantID,
		MessageType:     messageType,
		Content:         content,
		TotalRecipients: len(bookings),
	}
	if err := s.Broadcasts.Create(ctx, bc); err != nil {
		return nil, err
	}

	result := &SendBroadcastResult{BroadcastID: bc.ID, Status: model.BroadcastInProgress}

	for _, b := range bookings {
		rec := &model.BroadcastRecipient{
			BroadcastMessageID: bc.ID,
			BookingID:          b.ID,
			Phone:              b.Phone,
		}
		if err := s.Broadcasts.CreateRecipient(ctx, rec); err != nil {
			s.Log.Error("failed to create broadcast recipient",
				zap.Int("broadcast_id", bc.ID),
				zap.Int("booking_id", b.ID),
				zap.Error(err),
			)
			continue
		}

		if err := s.Queue.Publish(s.Topic, rec.ID); err != nil {
			s.Log.Error("failed to enqueue broadcast recipient",
				zap.Int("recipient_id", rec.ID),
				zap.Error(err),
			)
			continue
		}
		result.RecipientsQueued++
	}

	if err := s.Broadcasts.UpdateStatus(ctx, bc.ID, model.BroadcastInProgress); err != nil {
		return result, err
	}
	return result, nil
}

// ProcessRecipient delivers one queued recipient and settles its row. Wired
// as the queue subscriber in the worker.
func (s *BroadcastService) ProcessRecipient(ctx context.Context, recipientID int) error {
	rec, err := s.Broadcasts.GetRecipientByID(ctx, recipientID)
	if err != nil {
		return err
	}
	if rec == nil {
		s.Log.Warn("broadcast recipient not found", zap.Int("recipient_id", recipientID))
		return nil
	}
	if rec.DeliveryStatus != "pending" {
		return nil
	}

	bc, err := s.Broadcasts.GetByRecipient(ctx, recipientID)
	if err != nil {
		return err
	}

	outcome := s.Delivery.Send(ctx, bc.TenantID, rec.Phone, bc.Content, "")

	if outcome.Delivered() {
		if err := s.Broadcasts.MarkRecipientSent(ctx, rec.ID, time.Now().UTC()); err != nil {
			return err
		}
		metrics.BroadcastsSent.Inc()
	} else {
		errMsg := "delivery failed on both channels"
		if outcome.Err != nil {
			errMsg = outcome.Err.Error()
		}
		if err := s.Broadcasts.MarkRecipientFailed(ctx, rec.ID, errMsg); err != nil {
			return err
		}
		metrics.BroadcastFailures.Inc()
	}

	return s.Broadcasts.CompleteIfDone(ctx, bc.ID)
}

// GetBroadcast returns the broadcast with refreshed delivery counters.
func (s *BroadcastService) GetBroadcast(ctx context.Context, tenantID, id int) (*model.BroadcastMessage, error) {
	if err := s.Broadcasts.CompleteIfDone(ctx, id); err != nil {
		return nil, err
	}
	return s.Broadcasts.GetByID(ctx, tenantID, id)
}
