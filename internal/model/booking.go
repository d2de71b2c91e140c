// internal/model/booking.go
package model

import "time"

// Booking statuses as written by the booking subsystem. Only Cancelled and
// CheckedIn matter here: Cancelled suppresses delivery, CheckedIn triggers
// the welcome-settled message.
const (
	BookingConfirmed  = "Confirmed"
	BookingCheckedIn  = "CheckedIn"
	BookingCheckedOut = "CheckedOut"
	BookingCancelled  = "Cancelled"
)

type Booking struct {
	ID            int       `db:"id" json:"id"`
	TenantID      int       `db:"tenant_id" json:"tenant_id"`
	GuestName     string    `db:"guest_name" json:"guest_name"`
	Phone         string    `db:"phone" json:"phone"`
	RoomNumber    string    `db:"room_number" json:"room_number"`
	CheckinDate   time.Time `db:"checkin_date" json:"checkin_date"`
	CheckoutDate  time.Time `db:"checkout_date" json:"checkout_date"`
	Status        string    `db:"status" json:"status"`
	IsRepeatGuest bool      `db:"is_repeat_guest" json:"is_repeat_guest"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Nights is the stay length in whole nights.
func (b *Booking) Nights() int {
	return int(b.CheckoutDate.Sub(b.CheckinDate).Hours() / 24)
}
