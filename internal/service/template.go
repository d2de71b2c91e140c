// internal/service/template.go
package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
)

// RenderTemplate fills {Placeholder} markers by literal replacement. Unknown
// placeholders are left verbatim; rendering never fails.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// Placeholders is the fixed, enumerated set templates may use.
var Placeholders = []struct {
	Name        string
	Description string
}{
	{"{GuestFirstName}", "Guest's first name"},
	{"{GuestName}", "Guest's full name"},
	{"{HotelName}", "Hotel/property name"},
	{"{CheckInDate}", "Formatted check-in date"},
	{"{CheckOutDate}", "Formatted check-out date"},
	{"{RoomNumber}", "Assigned room number"},
	{"{PrepareLink}", "Link to pre-arrival preparation page"},
	{"{FeedbackLink}", "Link to feedback page"},
	{"{Nights}", "Number of nights staying"},
}

const dateFormat = "Monday, January 2"

// PlaceholderValues builds the replacement map for a booking at a tenant.
func PlaceholderValues(booking *model.Booking, tenant *model.Tenant, portalDomain string) map[string]string {
	firstName := booking.GuestName
	if i := strings.IndexByte(firstName, ' '); i > 0 {
		firstName = firstName[:i]
	}

	portalURL := fmt.Sprintf("https://%s.%s", tenant.Slug, portalDomain)

	return map[string]string{
		"GuestFirstName": firstName,
		"GuestName":      booking.GuestName,
		"HotelName":      tenant.Name,
		"CheckInDate":    booking.CheckinDate.Format(dateFormat),
		"CheckOutDate":   booking.CheckoutDate.Format(dateFormat),
		"RoomNumber":     booking.RoomNumber,
		"PrepareLink":    fmt.Sprintf("%s/prepare?booking=%d", portalURL, booking.ID),
		"FeedbackLink":   fmt.Sprintf("%s/feedback?room=%s", portalURL, booking.RoomNumber),
		"Nights":         strconv.Itoa(booking.Nights()),
	}
}

// SamplePlaceholderValues backs the template preview endpoint.
func SamplePlaceholderValues(hotelName, portalDomain, slug string) map[string]string {
	portalURL := fmt.Sprintf("https://%s.%s", slug, portalDomain)
	today := time.Now()
	return map[string]string{
		"GuestFirstName": "John",
		"GuestName":      "John Smith",
		"HotelName":      hotelName,
		"CheckInDate":    today.AddDate(0, 0, 3).Format(dateFormat),
		"CheckOutDate":   today.AddDate(0, 0, 5).Format(dateFormat),
		"RoomNumber":     "205",
		"PrepareLink":    fmt.Sprintf("%s/prepare?booking=12345", portalURL),
		"FeedbackLink":   fmt.Sprintf("%s/feedback?room=205", portalURL),
		"Nights":         "2",
	}
}

// Built-in default templates, used when a tenant has not stored custom text.
var defaultTemplates = map[model.MessageType]string{
	model.TypePreArrival: `Hi {GuestFirstName}!

Your stay at {HotelName} is coming up on {CheckInDate}. We're excited to welcome you!

Prepare for your arrival:
{PrepareLink}

Safe travels!`,

	model.TypeCheckinDay: `Good morning {GuestFirstName}!

Today's the day! We're looking forward to welcoming you to {HotelName}.

Check-in is available from 2 PM. Need an early check-in? Just let us know!

See you soon!`,

	model.TypeWelcomeSettled: `Hi {GuestFirstName}!

Hope you're settling in well! How's room {RoomNumber}?

Let us know how we're doing:
{FeedbackLink}

We're here for anything you need!`,

	model.TypeMidStay: `Hi {GuestFirstName}!

How's your stay going so far? We hope you're enjoying {HotelName}!

Need anything? Just message us here or call the front desk.

Have a wonderful day!`,

	model.TypePreCheckout: `Hi {GuestFirstName}!

Your checkout is tomorrow. We hope you've had a wonderful stay!

Need a late checkout? We'll do our best to accommodate you - just let us know!

Thanks for staying with us at {HotelName}!`,

	model.TypePostStay: `Hi {GuestFirstName}!

Thank you for staying with us at {HotelName}!

We'd love to hear about your experience:
{FeedbackLink}

We hope to see you again soon!`,
}

// DefaultTemplate returns the built-in text for a message type.
func DefaultTemplate(t model.MessageType) string {
	return defaultTemplates[t]
}

// templateOrDefault prefers tenant-stored text over the built-in default.
func templateOrDefault(custom *string, t model.MessageType) string {
	if custom != nil && strings.TrimSpace(*custom) != "" {
		return *custom
	}
	return DefaultTemplate(t)
}
