// internal/model/broadcast.go
package model

import "time"

// Broadcast message types. "custom" carries operator-written content; the
// rest are operational announcements.
const (
	BroadcastEmergency    = "emergency"
	BroadcastPowerOutage  = "power_outage"
	BroadcastWaterOutage  = "water_outage"
	BroadcastInternetDown = "internet_down"
	BroadcastCustom       = "custom"
)

// Broadcast lifecycle.
const (
	BroadcastPending    = "pending"
	BroadcastInProgress = "in_progress"
	BroadcastCompleted  = "completed"
	BroadcastFailed     = "failed"
)

// Recipient scopes: who a broadcast fans out to.
const (
	ScopeActiveOnly   = "active_only"
	ScopeRecentGuests = "recent_guests"
	ScopeAllGuests    = "all_guests"
)

// BroadcastMessage is a one-off tenant-wide announcement fanned out over the
// send queue, one recipient row per guest phone.
type BroadcastMessage struct {
	ID                   int        `db:"id" json:"id"`
	TenantID             int        `db:"tenant_id" json:"tenant_id"`
	MessageType          string     `db:"message_type" json:"message_type"`
	Content              string     `db:"content" json:"content"`
	TotalRecipients      int        `db:"total_recipients" json:"total_recipients"`
	SuccessfulDeliveries int        `db:"successful_deliveries" json:"successful_deliveries"`
	FailedDeliveries     int        `db:"failed_deliveries" json:"failed_deliveries"`
	Status               string     `db:"status" json:"status"`
	CreatedBy            string     `db:"created_by" json:"created_by"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	CompletedAt          *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

type BroadcastRecipient struct {
	ID                 int        `db:"id" json:"id"`
	BroadcastMessageID int        `db:"broadcast_message_id" json:"broadcast_message_id"`
	BookingID          int        `db:"booking_id" json:"booking_id"`
	Phone              string     `db:"phone" json:"phone"`
	DeliveryStatus     string     `db:"delivery_status" json:"delivery_status"`
	ErrorMessage       string     `db:"error_message" json:"error_message,omitempty"`
	SentAt             *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	RetryCount         int        `db:"retry_count" json:"retry_count"`
}
