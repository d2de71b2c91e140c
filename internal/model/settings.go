// internal/model/settings.go
package model

import "time"

// Defaults applied when a tenant has no stored value or a stored value fails
// to parse.
const (
	DefaultPreArrivalTime     = "10:00"
	DefaultCheckinDayTime     = "09:00"
	DefaultMidStayTime        = "10:00"
	DefaultPreCheckoutTime    = "18:00"
	DefaultPostStayTime       = "10:00"
	DefaultPreArrivalDays     = 1
	DefaultWelcomeSettledHrs  = 2
	DefaultTimezone           = "Africa/Johannesburg"
)

// GuestJourneySettings is the per-tenant proactive messaging configuration.
// One row per tenant, created on first access. Template fields are nil when
// the tenant uses the built-in default text.
type GuestJourneySettings struct {
	ID       int `db:"id" json:"id"`
	TenantID int `db:"tenant_id" json:"tenant_id"`

	PreArrivalEnabled    bool    `db:"pre_arrival_enabled" json:"pre_arrival_enabled"`
	PreArrivalDaysBefore int     `db:"pre_arrival_days_before" json:"pre_arrival_days_before"`
	PreArrivalTime       string  `db:"pre_arrival_time" json:"pre_arrival_time"`
	PreArrivalTemplate   *string `db:"pre_arrival_template" json:"pre_arrival_template,omitempty"`

	CheckinDayEnabled  bool    `db:"checkin_day_enabled" json:"checkin_day_enabled"`
	CheckinDayTime     string  `db:"checkin_day_time" json:"checkin_day_time"`
	CheckinDayTemplate *string `db:"checkin_day_template" json:"checkin_day_template,omitempty"`

	WelcomeSettledEnabled    bool    `db:"welcome_settled_enabled" json:"welcome_settled_enabled"`
	WelcomeSettledHoursAfter int     `db:"welcome_settled_hours_after" json:"welcome_settled_hours_after"`
	WelcomeSettledTemplate   *string `db:"welcome_settled_template" json:"welcome_settled_template,omitempty"`

	MidStayEnabled  bool    `db:"mid_stay_enabled" json:"mid_stay_enabled"`
	MidStayTime     string  `db:"mid_stay_time" json:"mid_stay_time"`
	MidStayTemplate *string `db:"mid_stay_template" json:"mid_stay_template,omitempty"`

	PreCheckoutEnabled  bool    `db:"pre_checkout_enabled" json:"pre_checkout_enabled"`
	PreCheckoutTime     string  `db:"pre_checkout_time" json:"pre_checkout_time"`
	PreCheckoutTemplate *string `db:"pre_checkout_template" json:"pre_checkout_template,omitempty"`

	PostStayEnabled  bool    `db:"post_stay_enabled" json:"post_stay_enabled"`
	PostStayTime     string  `db:"post_stay_time" json:"post_stay_time"`
	PostStayTemplate *string `db:"post_stay_template" json:"post_stay_template,omitempty"`

	WelcomeImageURL       string `db:"welcome_image_url" json:"welcome_image_url,omitempty"`
	IncludePhotoInWelcome bool   `db:"include_photo_in_welcome" json:"include_photo_in_welcome"`

	// IANA timezone used to turn tenant-local wall-clock times into UTC.
	Timezone string `db:"timezone" json:"timezone"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultGuestJourneySettings returns the row created on a tenant's first
// settings access.
func DefaultGuestJourneySettings(tenantID int) *GuestJourneySettings {
	return &GuestJourneySettings{
		TenantID:                 tenantID,
		PreArrivalEnabled:        true,
		PreArrivalDaysBefore:     DefaultPreArrivalDays,
		PreArrivalTime:           DefaultPreArrivalTime,
		CheckinDayEnabled:        true,
		CheckinDayTime:           DefaultCheckinDayTime,
		WelcomeSettledEnabled:    true,
		WelcomeSettledHoursAfter: DefaultWelcomeSettledHrs,
		MidStayEnabled:           true,
		MidStayTime:              DefaultMidStayTime,
		PreCheckoutEnabled:       true,
		PreCheckoutTime:          DefaultPreCheckoutTime,
		PostStayEnabled:          true,
		PostStayTime:             DefaultPostStayTime,
		IncludePhotoInWelcome:    true,
		Timezone:                 DefaultTimezone,
	}
}
