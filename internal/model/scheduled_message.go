// internal/model/scheduled_message.go
package model

import "time"

// MessageType is one of the fixed guest-journey stages.
type MessageType string

const (
	TypePreArrival     MessageType = "pre_arrival"
	TypeCheckinDay     MessageType = "checkin_day"
	TypeWelcomeSettled MessageType = "welcome_settled"
	TypeMidStay        MessageType = "mid_stay"
	TypePreCheckout    MessageType = "pre_checkout"
	TypePostStay       MessageType = "post_stay"
)

// AllMessageTypes in journey order.
var AllMessageTypes = []MessageType{
	TypePreArrival,
	TypeCheckinDay,
	TypeWelcomeSettled,
	TypeMidStay,
	TypePreCheckout,
	TypePostStay,
}

// ParseMessageType rejects anything outside the closed set.
func ParseMessageType(s string) (MessageType, bool) {
	for _, t := range AllMessageTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// MessageStatus is the lifecycle of a scheduled message.
// "sending" is the transient claim state held while a delivery attempt is in
// flight; it never rests in the database between processing passes.
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusSending   MessageStatus = "sending"
	StatusSent      MessageStatus = "sent"
	StatusFailed    MessageStatus = "failed"
	StatusCancelled MessageStatus = "cancelled"
)

func ParseMessageStatus(s string) (MessageStatus, bool) {
	switch MessageStatus(s) {
	case StatusPending, StatusSending, StatusSent, StatusFailed, StatusCancelled:
		return MessageStatus(s), true
	}
	return "", false
}

// DeliveryMethod records which channel ultimately delivered a message.
// The distinction between whatsapp and whatsapp_failed_to_sms is load-bearing
// for cost rollups downstream.
type DeliveryMethod string

const (
	MethodWhatsApp            DeliveryMethod = "whatsapp"
	MethodWhatsAppFailedToSMS DeliveryMethod = "whatsapp_failed_to_sms"
	MethodSMS                 DeliveryMethod = "sms"
	MethodNone                DeliveryMethod = "none"
)

// ScheduledMessage is one planned outbound guest contact. Exactly one row
// exists per (booking_id, message_type); rescheduling updates the row in
// place and cancellation is a status, never a delete.
type ScheduledMessage struct {
	ID                    int            `db:"id" json:"id"`
	TenantID              int            `db:"tenant_id" json:"tenant_id"`
	BookingID             int            `db:"booking_id" json:"booking_id"`
	Phone                 string         `db:"phone" json:"phone"`
	MessageType           MessageType    `db:"message_type" json:"message_type"`
	ScheduledFor          time.Time      `db:"scheduled_for" json:"scheduled_for"`
	Content               string         `db:"content" json:"content"`
	MediaURL              string         `db:"media_url" json:"media_url,omitempty"`
	Status                MessageStatus  `db:"status" json:"status"`
	SentAt                *time.Time     `db:"sent_at" json:"sent_at,omitempty"`
	ErrorMessage          string         `db:"error_message" json:"error_message,omitempty"`
	RetryCount            int            `db:"retry_count" json:"retry_count"`
	SuccessfulMethod      DeliveryMethod `db:"successful_method" json:"successful_method"`
	WhatsAppFailureReason string         `db:"whatsapp_failure_reason" json:"whatsapp_failure_reason,omitempty"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`
}

// Terminal reports whether the row may never be picked up again by the
// due-message scan.
func (m *ScheduledMessage) Terminal() bool {
	return m.Status == StatusSent || m.Status == StatusCancelled
}
