// internal/service/journey_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tshekom8206/staybotplatform-sub005/internal/metrics"
	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
	"github.com/tshekom8206/staybotplatform-sub005/internal/repository"
)

// JourneyService owns the proactive guest-messaging lifecycle: computing fire
// times per booking, keeping one row per (booking, type), and draining due
// rows through the delivery channel.
type JourneyService struct {
	Messages repository.ScheduledMessageRepositoryInterface
	Settings repository.SettingsRepositoryInterface
	Bookings repository.BookingRepositoryInterface
	Tenants  repository.TenantRepositoryInterface
	Delivery DeliveryChannel

	PortalDomain string
	BatchSize    int
	Log          *zap.Logger
}

// plannedMessage is one journey stage resolved to an absolute UTC fire time.
type plannedMessage struct {
	msgType  model.MessageType
	fireAt   time.Time
	template string
	mediaURL string
}

// ScheduleMessagesForBooking computes fire times for every enabled message
// type and upserts one pending row per type. Stages whose window has already
// elapsed are skipped; a previously scheduled row whose recomputed time is
// now past gets cancelled instead of back-filled. Content is rendered here,
// once - later settings edits do not rewrite already-scheduled text.
func (s *JourneyService) ScheduleMessagesForBooking(ctx context.Context, tenantID int, booking *model.Booking) error {
	settings, err := s.Settings.GetOrCreate(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	tenant, err := s.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load tenant: %w", err)
	}

	loc := loadTimezone(settings.Timezone)
	now := time.Now().UTC()
	isOneNight := booking.Nights() == 1
	values := PlaceholderValues(booking, tenant, s.PortalDomain)

	var planned []plannedMessage

	if settings.PreArrivalEnabled {
		date := booking.CheckinDate.AddDate(0, 0, -settings.PreArrivalDaysBefore)
		planned = append(planned, plannedMessage{
			msgType:  model.TypePreArrival,
			fireAt:   fireTime(date, settings.PreArrivalTime, model.DefaultPreArrivalTime, loc),
			template: templateOrDefault(settings.PreArrivalTemplate, model.TypePreArrival),
		})
	}

	if settings.CheckinDayEnabled {
		mediaURL := ""
		if settings.IncludePhotoInWelcome {
			mediaURL = settings.WelcomeImageURL
		}
		planned = append(planned, plannedMessage{
			msgType:  model.TypeCheckinDay,
			fireAt:   fireTime(booking.CheckinDate, settings.CheckinDayTime, model.DefaultCheckinDayTime, loc),
			template: templateOrDefault(settings.CheckinDayTemplate, model.TypeCheckinDay),
			mediaURL: mediaURL,
		})
	}

	// Mid-stay lands one day into the stay; a 1-night stay has no mid-stay.
	// A booking that shrank to one night on reschedule sheds its stale row.
	if isOneNight {
		if err := s.cancelIfPending(ctx, booking.ID, model.TypeMidStay); err != nil {
			return err
		}
	}
	if settings.MidStayEnabled && !isOneNight {
		planned = append(planned, plannedMessage{
			msgType:  model.TypeMidStay,
			fireAt:   fireTime(booking.CheckinDate.AddDate(0, 0, 1), settings.MidStayTime, model.DefaultMidStayTime, loc),
			template: templateOrDefault(settings.MidStayTemplate, model.TypeMidStay),
		})
	}

	if settings.PreCheckoutEnabled {
		// 1-night stays get the reminder on check-in evening; otherwise the
		// day before checkout.
		date := booking.CheckoutDate.AddDate(0, 0, -1)
		if isOneNight {
			date = booking.CheckinDate
		}
		planned = append(planned, plannedMessage{
			msgType:  model.TypePreCheckout,
			fireAt:   fireTime(date, settings.PreCheckoutTime, model.DefaultPreCheckoutTime, loc),
			template: templateOrDefault(settings.PreCheckoutTemplate, model.TypePreCheckout),
		})
	}

	if settings.PostStayEnabled {
		planned = append(planned, plannedMessage{
			msgType:  model.TypePostStay,
			fireAt:   fireTime(booking.CheckoutDate, settings.PostStayTime, model.DefaultPostStayTime, loc),
			template: templateOrDefault(settings.PostStayTemplate, model.TypePostStay),
		})
	}

	// WelcomeSettled is deliberately absent here: it fires off the actual
	// check-in event, not the booking dates (see ScheduleWelcomeSettled).

	for _, p := range planned {
		if !p.fireAt.After(now) {
			if err := s.cancelIfPending(ctx, booking.ID, p.msgType); err != nil {
				return err
			}
			s.Log.Info("skipping message, window already elapsed",
				zap.Int("booking_id", booking.ID),
				zap.String("message_type", string(p.msgType)),
				zap.Time("fire_at", p.fireAt),
			)
			continue
		}

		msg := &model.ScheduledMessage{
			TenantID:     tenantID,
			BookingID:    booking.ID,
			Phone:        booking.Phone,
			MessageType:  p.msgType,
			ScheduledFor: p.fireAt,
			Content:      RenderTemplate(p.template, values),
			MediaURL:     p.mediaURL,
		}
		if _, _, err := s.Messages.Upsert(ctx, msg); err != nil {
			return fmt.Errorf("upsert %s message: %w", p.msgType, err)
		}
	}

	s.Log.Info("scheduled proactive messages",
		zap.Int("tenant_id", tenantID),
		zap.Int("booking_id", booking.ID),
		zap.Int("planned", len(planned)),
	)
	return nil
}

// ScheduleWelcomeSettled fires once per booking, when the guest is recorded
// as checked in. A second check-in event is a no-op.
func (s *JourneyService) ScheduleWelcomeSettled(ctx context.Context, booking *model.Booking) error {
	settings, err := s.Settings.GetOrCreate(ctx, booking.TenantID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !settings.WelcomeSettledEnabled {
		return nil
	}

	existing, err := s.Messages.GetByBookingAndType(ctx, booking.ID, model.TypeWelcomeSettled)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	tenant, err := s.Tenants.GetByID(ctx, booking.TenantID)
	if err != nil {
		return fmt.Errorf("load tenant: %w", err)
	}

	hours := settings.WelcomeSettledHoursAfter
	if hours <= 0 {
		hours = model.DefaultWelcomeSettledHrs
	}

	msg := &model.ScheduledMessage{
		TenantID:     booking.TenantID,
		BookingID:    booking.ID,
		Phone:        booking.Phone,
		MessageType:  model.TypeWelcomeSettled,
		ScheduledFor: time.Now().UTC().Add(time.Duration(hours) * time.Hour),
		Content: RenderTemplate(
			templateOrDefault(settings.WelcomeSettledTemplate, model.TypeWelcomeSettled),
			PlaceholderValues(booking, tenant, s.PortalDomain),
		),
	}
	_, _, err = s.Messages.Upsert(ctx, msg)
	return err
}

// RescheduleMessagesForBooking re-runs the scheduling pass after booking
// dates changed; the upsert discipline updates rows in place.
func (s *JourneyService) RescheduleMessagesForBooking(ctx context.Context, tenantID int, booking *model.Booking) error {
	return s.ScheduleMessagesForBooking(ctx, tenantID, booking)
}

// CancelMessagesForBooking flips every pending row to cancelled, e.g. when
// the booking itself is cancelled.
func (s *JourneyService) CancelMessagesForBooking(ctx context.Context, bookingID int) (int, error) {
	n, err := s.Messages.CancelPendingForBooking(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	s.Log.Info("cancelled pending messages",
		zap.Int("booking_id", bookingID),
		zap.Int("count", n),
	)
	return n, nil
}

// ProcessResult summarizes one due-message pass.
type ProcessResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
	Skipped   int `json:"skipped"`
}

// ProcessDueMessages drains due pending rows. Each row is claimed with a
// conditional pending->sending update first, so overlapping passes attempt
// each row at most once. A row's failure never aborts the pass.
func (s *JourneyService) ProcessDueMessages(ctx context.Context) (*ProcessResult, error) {
	batch := s.BatchSize
	if batch <= 0 {
		batch = 50
	}

	now := time.Now().UTC()
	due, err := s.Messages.ListDue(ctx, now, batch)
	if err != nil {
		return nil, fmt.Errorf("list due messages: %w", err)
	}

	result := &ProcessResult{}
	s.Log.Info("processing due scheduled messages", zap.Int("count", len(due)))

	for _, msg := range due {
		claimed, err := s.Messages.Claim(ctx, msg.ID)
		if err != nil {
			s.Log.Error("failed to claim message", zap.Int("message_id", msg.ID), zap.Error(err))
			continue
		}
		if !claimed {
			// Another pass got there first.
			result.Skipped++
			continue
		}

		result.Processed++
		s.processClaimed(ctx, msg, result)
	}

	return result, nil
}

// processClaimed owns a row that has been moved to sending and must leave it
// in a resting state whatever happens.
func (s *JourneyService) processClaimed(ctx context.Context, msg *model.ScheduledMessage, result *ProcessResult) {
	booking, err := s.Bookings.GetByID(ctx, msg.TenantID, msg.BookingID)
	if err != nil {
		s.Log.Error("failed to load booking for message",
			zap.Int("message_id", msg.ID),
			zap.Int("booking_id", msg.BookingID),
			zap.Error(err),
		)
		if dbErr := s.Messages.MarkFailed(ctx, msg.ID, err.Error(), ""); dbErr != nil {
			s.Log.Error("failed to record failure", zap.Int("message_id", msg.ID), zap.Error(dbErr))
		}
		result.Failed++
		return
	}

	if booking.Status == model.BookingCancelled {
		if err := s.Messages.MarkCancelled(ctx, msg.ID); err != nil {
			s.Log.Error("failed to cancel message", zap.Int("message_id", msg.ID), zap.Error(err))
		}
		result.Cancelled++
		return
	}

	outcome := s.Delivery.Send(ctx, msg.TenantID, msg.Phone, msg.Content, msg.MediaURL)

	if outcome.Delivered() {
		if err := s.Messages.MarkSent(ctx, msg.ID, outcome.Method, outcome.WhatsAppFailureReason, time.Now().UTC()); err != nil {
			s.Log.Error("failed to record sent status", zap.Int("message_id", msg.ID), zap.Error(err))
		}
		metrics.MessagesSent.WithLabelValues(string(outcome.Method)).Inc()
		result.Sent++
		s.Log.Info("sent scheduled message",
			zap.Int("message_id", msg.ID),
			zap.String("message_type", string(msg.MessageType)),
			zap.String("method", string(outcome.Method)),
		)
		return
	}

	errMsg := "delivery failed on both channels"
	if outcome.Err != nil {
		errMsg = outcome.Err.Error()
	}
	if err := s.Messages.MarkFailed(ctx, msg.ID, errMsg, outcome.WhatsAppFailureReason); err != nil {
		s.Log.Error("failed to record failure", zap.Int("message_id", msg.ID), zap.Error(err))
	}
	metrics.MessageFailures.Inc()
	result.Failed++
}

// ListScheduledMessages is the tenant-scoped query surface with clamped
// pagination. Unrecognized status or type filters are rejected outright.
func (s *JourneyService) ListScheduledMessages(ctx context.Context, tenantID int, status, msgType string, page, pageSize int) ([]model.ScheduledMessage, map[string]int, error) {
	if status != "" {
		if _, ok := model.ParseMessageStatus(status); !ok {
			return nil, nil, fmt.Errorf("unrecognized status: %s", status)
		}
	}
	if msgType != "" {
		if _, ok := model.ParseMessageType(msgType); !ok {
			return nil, nil, fmt.Errorf("unrecognized message type: %s", msgType)
		}
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.Messages.List(ctx, tenantID, status, msgType, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}

	messages := make([]model.ScheduledMessage, len(ptrs))
	for i, m := range ptrs {
		messages[i] = *m
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return messages, pagination, nil
}

// GetSettings returns the tenant's settings, creating defaults on first use.
func (s *JourneyService) GetSettings(ctx context.Context, tenantID int) (*model.GuestJourneySettings, error) {
	return s.Settings.GetOrCreate(ctx, tenantID)
}

// UpdateSettings normalizes and persists the tenant's settings. Malformed
// wall-clock times and timezones are replaced with the documented defaults
// rather than rejected.
func (s *JourneyService) UpdateSettings(ctx context.Context, tenantID int, updated *model.GuestJourneySettings) (*model.GuestJourneySettings, error) {
	current, err := s.Settings.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	updated.ID = current.ID
	updated.TenantID = tenantID

	updated.PreArrivalTime = normalizeTimeOfDay(updated.PreArrivalTime, model.DefaultPreArrivalTime)
	updated.CheckinDayTime = normalizeTimeOfDay(updated.CheckinDayTime, model.DefaultCheckinDayTime)
	updated.MidStayTime = normalizeTimeOfDay(updated.MidStayTime, model.DefaultMidStayTime)
	updated.PreCheckoutTime = normalizeTimeOfDay(updated.PreCheckoutTime, model.DefaultPreCheckoutTime)
	updated.PostStayTime = normalizeTimeOfDay(updated.PostStayTime, model.DefaultPostStayTime)

	if updated.PreArrivalDaysBefore <= 0 {
		updated.PreArrivalDaysBefore = model.DefaultPreArrivalDays
	}
	if updated.WelcomeSettledHoursAfter <= 0 {
		updated.WelcomeSettledHoursAfter = model.DefaultWelcomeSettledHrs
	}
	if _, err := time.LoadLocation(updated.Timezone); err != nil || updated.Timezone == "" {
		updated.Timezone = model.DefaultTimezone
	}

	if err := s.Settings.Update(ctx, updated); err != nil {
		return nil, err
	}
	return s.Settings.GetOrCreate(ctx, tenantID)
}

// PreviewTemplate renders operator-supplied text against sample data.
func (s *JourneyService) PreviewTemplate(ctx context.Context, tenantID int, template string) (string, error) {
	tenant, err := s.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return RenderTemplate(template, SamplePlaceholderValues(tenant.Name, s.PortalDomain, tenant.Slug)), nil
}

func (s *JourneyService) cancelIfPending(ctx context.Context, bookingID int, msgType model.MessageType) error {
	existing, err := s.Messages.GetByBookingAndType(ctx, bookingID, msgType)
	if err != nil {
		return err
	}
	if existing != nil && existing.Status == model.StatusPending {
		return s.Messages.MarkCancelled(ctx, existing.ID)
	}
	return nil
}

// fireTime combines a calendar date with a tenant-local "HH:MM" wall-clock
// time and converts the result to UTC.
func fireTime(date time.Time, timeOfDay, fallback string, loc *time.Location) time.Time {
	hour, minute := parseTimeOfDay(timeOfDay, fallback)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc).UTC()
}

// normalizeTimeOfDay returns s unchanged when it is a valid "HH:MM"
// wall-clock time and the fallback default otherwise.
func normalizeTimeOfDay(s, fallback string) string {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) == 2 {
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil && h >= 0 && h < 24 && m >= 0 && m < 60 {
			return s
		}
	}
	return fallback
}

func parseTimeOfDay(s, fallback string) (hour, minute int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) == 2 {
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil && h >= 0 && h < 24 && m >= 0 && m < 60 {
			return h, m
		}
	}
	if s != fallback {
		return parseTimeOfDay(fallback, fallback)
	}
	return 0, 0
}

func loadTimezone(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(model.DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}
