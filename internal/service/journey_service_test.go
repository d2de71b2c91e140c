package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
	"github.com/tshekom8206/staybotplatform-sub005/internal/service"
)

// In-memory repositories backing the service tests.

type mockMessageRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]*model.ScheduledMessage
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{nextID: 1, rows: map[int]*model.ScheduledMessage{}}
}

func (m *mockMessageRepo) Upsert(ctx context.Context, msg *model.ScheduledMessage) (*model.ScheduledMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.rows {
		if row.BookingID == msg.BookingID && row.MessageType == msg.MessageType {
			if row.Status != model.StatusPending {
				copied := *row
				return &copied, false, nil
			}
			row.Phone = msg.Phone
			row.ScheduledFor = msg.ScheduledFor
			row.Content = msg.Content
			row.MediaURL = msg.MediaURL
			row.UpdatedAt = time.Now()
			copied := *row
			return &copied, false, nil
		}
	}

	stored := *msg
	stored.ID = m.nextID
	m.nextID++
	stored.Status = model.StatusPending
	stored.SuccessfulMethod = model.MethodNone
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.rows[stored.ID] = &stored

	copied := stored
	return &copied, true, nil
}

func (m *mockMessageRepo) GetByBookingAndType(ctx context.Context, bookingID int, msgType model.MessageType) (*model.ScheduledMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.BookingID == bookingID && row.MessageType == msgType {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id int) (*model.ScheduledMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (m *mockMessageRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]*model.ScheduledMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	due := []*model.ScheduledMessage{}
	for _, row := range m.rows {
		if row.Status == model.StatusPending && !row.ScheduledFor.After(now) {
			copied := *row
			due = append(due, &copied)
			if len(due) == limit {
				break
			}
		}
	}
	return due, nil
}

func (m *mockMessageRepo) Claim(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.Status != model.StatusPending {
		return false, nil
	}
	row.Status = model.StatusSending
	return true, nil
}

func (m *mockMessageRepo) MarkSent(ctx context.Context, id int, method model.DeliveryMethod, whatsAppFailureReason string, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("no row %d", id)
	}
	row.Status = model.StatusSent
	row.SentAt = &sentAt
	row.SuccessfulMethod = method
	row.WhatsAppFailureReason = whatsAppFailureReason
	row.ErrorMessage = ""
	return nil
}

func (m *mockMessageRepo) MarkFailed(ctx context.Context, id int, errorMessage, whatsAppFailureReason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("no row %d", id)
	}
	row.Status = model.StatusFailed
	row.ErrorMessage = errorMessage
	row.WhatsAppFailureReason = whatsAppFailureReason
	row.RetryCount++
	return nil
}

func (m *mockMessageRepo) MarkCancelled(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("no row %d", id)
	}
	row.Status = model.StatusCancelled
	return nil
}

func (m *mockMessageRepo) CancelPendingForBooking(ctx context.Context, bookingID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.rows {
		if row.BookingID == bookingID && row.Status == model.StatusPending {
			row.Status = model.StatusCancelled
			n++
		}
	}
	return n, nil
}

func (m *mockMessageRepo) List(ctx context.Context, tenantID int, status, msgType string, offset, limit int) ([]*model.ScheduledMessage, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []*model.ScheduledMessage{}
	for _, row := range m.rows {
		if row.TenantID != tenantID {
			continue
		}
		if status != "" && string(row.Status) != status {
			continue
		}
		if msgType != "" && string(row.MessageType) != msgType {
			continue
		}
		copied := *row
		matched = append(matched, &copied)
	}
	total := len(matched)
	if offset >= len(matched) {
		return []*model.ScheduledMessage{}, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *mockMessageRepo) get(id int) *model.ScheduledMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *mockMessageRepo) byType(bookingID int, t model.MessageType) *model.ScheduledMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.BookingID == bookingID && row.MessageType == t {
			return row
		}
	}
	return nil
}

type mockSettingsRepo struct {
	settings *model.GuestJourneySettings
	updated  *model.GuestJourneySettings
}

func (m *mockSettingsRepo) GetOrCreate(ctx context.Context, tenantID int) (*model.GuestJourneySettings, error) {
	if m.settings == nil {
		m.settings = model.DefaultGuestJourneySettings(tenantID)
		m.settings.ID = 1
	}
	copied := *m.settings
	return &copied, nil
}

func (m *mockSettingsRepo) Update(ctx context.Context, s *model.GuestJourneySettings) error {
	copied := *s
	m.settings = &copied
	m.updated = &copied
	return nil
}

type mockBookingRepo struct {
	bookings map[int]*model.Booking
}

func (m *mockBookingRepo) GetByID(ctx context.Context, tenantID, id int) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, errors.New("booking not found")
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookingRepo) ListForBroadcast(ctx context.Context, tenantID int, scope string) ([]*model.Booking, error) {
	out := []*model.Booking{}
	for _, b := range m.bookings {
		if b.TenantID == tenantID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

type mockTenantRepo struct{}

func (m *mockTenantRepo) GetByID(ctx context.Context, id int) (*model.Tenant, error) {
	return &model.Tenant{ID: id, Name: "Seaview Boutique Hotel", Slug: "seaview"}, nil
}

type mockDelivery struct {
	mu      sync.Mutex
	outcome service.Outcome
	calls   int
}

func (m *mockDelivery) Send(ctx context.Context, tenantID int, phone, content, mediaURL string) service.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.outcome
}

func (m *mockDelivery) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newTestService(msgs *mockMessageRepo, bookings *mockBookingRepo, delivery *mockDelivery) *service.JourneyService {
	return &service.JourneyService{
		Messages:     msgs,
		Settings:     &mockSettingsRepo{},
		Bookings:     bookings,
		Tenants:      &mockTenantRepo{},
		Delivery:     delivery,
		PortalDomain: "staybot.example",
		BatchSize:    50,
		Log:          zap.NewNop(),
	}
}

func futureBooking(id int, nights int) *model.Booking {
	checkin := time.Now().UTC().AddDate(0, 0, 7)
	return &model.Booking{
		ID:           id,
		TenantID:     1,
		GuestName:    "Ana Oliveira",
		Phone:        "+27821234567",
		RoomNumber:   "305",
		CheckinDate:  checkin,
		CheckoutDate: checkin.AddDate(0, 0, nights),
		Status:       model.BookingConfirmed,
	}
}

func TestScheduleMessagesForBooking(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, &mockDelivery{})

	if err := svc.ScheduleMessagesForBooking(context.Background(), 1, booking); err != nil {
		t.Fatal(err)
	}

	// Every date-driven stage, but never welcome_settled.
	for _, want := range []model.MessageType{
		model.TypePreArrival, model.TypeCheckinDay, model.TypeMidStay,
		model.TypePreCheckout, model.TypePostStay,
	} {
		row := msgs.byType(10, want)
		if row == nil {
			t.Errorf("no %s row scheduled", want)
			continue
		}
		if row.Status != model.StatusPending {
			t.Errorf("%s status = %s, want pending", want, row.Status)
		}
		if strings.Contains(row.Content, "{") {
			t.Errorf("%s content not fully rendered: %q", want, row.Content)
		}
	}
	if msgs.byType(10, model.TypeWelcomeSettled) != nil {
		t.Error("welcome_settled must only be scheduled from the check-in event")
	}
}

func TestScheduleMessagesForBookingIsIdempotent(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, &mockDelivery{})

	ctx := context.Background()
	if err := svc.ScheduleMessagesForBooking(ctx, 1, booking); err != nil {
		t.Fatal(err)
	}
	if err := svc.ScheduleMessagesForBooking(ctx, 1, booking); err != nil {
		t.Fatal(err)
	}

	msgs.mu.Lock()
	count := len(msgs.rows)
	msgs.mu.Unlock()
	if count != 5 {
		t.Errorf("row count = %d after two passes, want 5", count)
	}
}

func TestRescheduleUpdatesRowInPlace(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, &mockDelivery{})

	ctx := context.Background()
	if err := svc.ScheduleMessagesForBooking(ctx, 1, booking); err != nil {
		t.Fatal(err)
	}
	before := msgs.byType(10, model.TypePostStay)
	beforeID := before.ID
	beforeTime := before.ScheduledFor

	booking.CheckoutDate = booking.CheckoutDate.AddDate(0, 0, 2)
	if err := svc.RescheduleMessagesForBooking(ctx, 1, booking); err != nil {
		t.Fatal(err)
	}

	after := msgs.byType(10, model.TypePostStay)
	if after.ID != beforeID {
		t.Errorf("reschedule created a new row (%d -> %d) instead of updating", beforeID, after.ID)
	}
	if !after.ScheduledFor.After(beforeTime) {
		t.Errorf("scheduled_for did not move forward: %v -> %v", beforeTime, after.ScheduledFor)
	}
}

func TestOneNightStaySkipsMidStay(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 1)
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, &mockDelivery{})

	if err := svc.ScheduleMessagesForBooking(context.Background(), 1, booking); err != nil {
		t.Fatal(err)
	}

	if msgs.byType(10, model.TypeMidStay) != nil {
		t.Error("1-night stay must not get a mid_stay message")
	}

	// Pre-checkout lands on check-in day for a 1-night stay.
	pc := msgs.byType(10, model.TypePreCheckout)
	if pc == nil {
		t.Fatal("no pre_checkout row")
	}
	if pc.ScheduledFor.After(msgs.byType(10, model.TypePostStay).ScheduledFor) {
		t.Error("pre_checkout should fire before post_stay")
	}
}

func TestBookingShrunkToOneNightCancelsStaleMidStay(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, &mockDelivery{})

	ctx := context.Background()
	if err := svc.ScheduleMessagesForBooking(ctx, 1, booking); err != nil {
		t.Fatal(err)
	}
	if msgs.byType(10, model.TypeMidStay) == nil {
		t.Fatal("expected a mid_stay row for the 3-night stay")
	}

	booking.CheckoutDate = booking.CheckinDate.AddDate(0, 0, 1)
	if err := svc.RescheduleMessagesForBooking(ctx, 1, booking); err != nil {
		t.Fatal(err)
	}

	row := msgs.byType(10, model.TypeMidStay)
	if row.Status != model.StatusCancelled {
		t.Errorf("stale mid_stay status = %s, want cancelled", row.Status)
	}
}

func TestPastWindowIsSkipped(t *testing.T) {
	msgs := newMockMessageRepo()
	checkin := time.Now().UTC().AddDate(0, 0, -2)
	booking := &model.Booking{
		ID: 10, TenantID: 1, GuestName: "Ana Oliveira", Phone: "+27821234567",
		CheckinDate: checkin, CheckoutDate: checkin.AddDate(0, 0, 7),
		Status: model.BookingConfirmed,
	}
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, &mockDelivery{})

	if err := svc.ScheduleMessagesForBooking(context.Background(), 1, booking); err != nil {
		t.Fatal(err)
	}

	if msgs.byType(10, model.TypePreArrival) != nil {
		t.Error("pre_arrival window elapsed, row must not be created")
	}
	if msgs.byType(10, model.TypeCheckinDay) != nil {
		t.Error("checkin_day window elapsed, row must not be created")
	}
	if msgs.byType(10, model.TypePostStay) == nil {
		t.Error("post_stay is still in the future and should be scheduled")
	}
}

func TestWelcomeSettledFiresOnce(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	booking.Status = model.BookingCheckedIn
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, &mockDelivery{})

	ctx := context.Background()
	if err := svc.ScheduleWelcomeSettled(ctx, booking); err != nil {
		t.Fatal(err)
	}
	first := msgs.byType(10, model.TypeWelcomeSettled)
	if first == nil {
		t.Fatal("no welcome_settled row")
	}
	firstTime := first.ScheduledFor

	// A duplicate check-in event must not move or duplicate the row.
	if err := svc.ScheduleWelcomeSettled(ctx, booking); err != nil {
		t.Fatal(err)
	}
	second := msgs.byType(10, model.TypeWelcomeSettled)
	if !second.ScheduledFor.Equal(firstTime) {
		t.Error("second check-in event moved the welcome_settled fire time")
	}

	wantAround := time.Now().UTC().Add(2 * time.Hour)
	if firstTime.Before(wantAround.Add(-time.Minute)) || firstTime.After(wantAround.Add(time.Minute)) {
		t.Errorf("fire time %v not ~2h after check-in", firstTime)
	}
}

func dueMessage(msgs *mockMessageRepo, bookingID int) *model.ScheduledMessage {
	row, _, _ := msgs.Upsert(context.Background(), &model.ScheduledMessage{
		TenantID:     1,
		BookingID:    bookingID,
		Phone:        "+27821234567",
		MessageType:  model.TypeCheckinDay,
		ScheduledFor: time.Now().UTC().Add(-time.Minute),
		Content:      "Good morning Ana!",
	})
	return row
}

func TestProcessDueMessagesSends(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	delivery := &mockDelivery{outcome: service.Outcome{Method: model.MethodWhatsApp}}
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, delivery)

	row := dueMessage(msgs, 10)

	result, err := svc.ProcessDueMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Sent != 1 || result.Processed != 1 {
		t.Errorf("result = %+v, want 1 processed 1 sent", result)
	}

	stored := msgs.get(row.ID)
	if stored.Status != model.StatusSent {
		t.Errorf("status = %s, want sent", stored.Status)
	}
	if stored.SentAt == nil {
		t.Error("sent_at not recorded")
	}
	if stored.SuccessfulMethod != model.MethodWhatsApp {
		t.Errorf("successful_method = %s", stored.SuccessfulMethod)
	}
}

func TestProcessDueMessagesRecordsFallback(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	delivery := &mockDelivery{outcome: service.Outcome{
		Method:                model.MethodWhatsAppFailedToSMS,
		WhatsAppFailureReason: "recipient not on whatsapp",
	}}
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, delivery)

	row := dueMessage(msgs, 10)

	if _, err := svc.ProcessDueMessages(context.Background()); err != nil {
		t.Fatal(err)
	}

	stored := msgs.get(row.ID)
	if stored.Status != model.StatusSent {
		t.Errorf("status = %s, want sent", stored.Status)
	}
	if stored.SuccessfulMethod != model.MethodWhatsAppFailedToSMS {
		t.Errorf("successful_method = %s", stored.SuccessfulMethod)
	}
	if stored.WhatsAppFailureReason != "recipient not on whatsapp" {
		t.Errorf("whatsapp failure reason lost: %q", stored.WhatsAppFailureReason)
	}
}

func TestProcessDueMessagesMarksFailed(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	delivery := &mockDelivery{outcome: service.Outcome{
		Method:                model.MethodNone,
		WhatsAppFailureReason: "whatsapp down",
		Err:                   errors.New("whatsapp down"),
	}}
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, delivery)

	row := dueMessage(msgs, 10)

	result, err := svc.ProcessDueMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}

	stored := msgs.get(row.ID)
	if stored.Status != model.StatusFailed {
		t.Errorf("status = %s, want failed", stored.Status)
	}
	if stored.RetryCount != 1 {
		t.Errorf("retry_count = %d, want 1", stored.RetryCount)
	}

	// Failed rows are not picked up again by later passes.
	if _, err := svc.ProcessDueMessages(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := msgs.get(row.ID).RetryCount; got != 1 {
		t.Errorf("failed row was reprocessed, retry_count = %d", got)
	}
}

func TestProcessDueMessagesCancelledBooking(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	booking.Status = model.BookingCancelled
	delivery := &mockDelivery{outcome: service.Outcome{Method: model.MethodWhatsApp}}
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, delivery)

	row := dueMessage(msgs, 10)

	result, err := svc.ProcessDueMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Cancelled != 1 {
		t.Errorf("cancelled = %d, want 1", result.Cancelled)
	}
	if msgs.get(row.ID).Status != model.StatusCancelled {
		t.Error("row for a cancelled booking must end cancelled")
	}
	if delivery.callCount() != 0 {
		t.Error("no delivery attempt for a cancelled booking")
	}
}

func TestConcurrentProcessingSendsAtMostOnce(t *testing.T) {
	msgs := newMockMessageRepo()
	booking := futureBooking(10, 3)
	delivery := &mockDelivery{outcome: service.Outcome{Method: model.MethodWhatsApp}}
	svc := newTestService(msgs, &mockBookingRepo{bookings: map[int]*model.Booking{10: booking}}, delivery)

	dueMessage(msgs, 10)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ProcessDueMessages(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if delivery.callCount() != 1 {
		t.Errorf("delivery attempts = %d, want exactly 1", delivery.callCount())
	}
}

func TestListScheduledMessagesRejectsUnknownFilters(t *testing.T) {
	svc := newTestService(newMockMessageRepo(), &mockBookingRepo{}, &mockDelivery{})

	if _, _, err := svc.ListScheduledMessages(context.Background(), 1, "bogus", "", 1, 20); err == nil {
		t.Error("unknown status filter must be rejected")
	}
	if _, _, err := svc.ListScheduledMessages(context.Background(), 1, "", "bogus", 1, 20); err == nil {
		t.Error("unknown type filter must be rejected")
	}
}

func TestListScheduledMessagesPagination(t *testing.T) {
	msgs := newMockMessageRepo()
	svc := newTestService(msgs, &mockBookingRepo{}, &mockDelivery{})

	ctx := context.Background()
	for i := 1; i <= 7; i++ {
		msgs.Upsert(ctx, &model.ScheduledMessage{
			TenantID:     1,
			BookingID:    i,
			Phone:        "+27821234567",
			MessageType:  model.TypePreArrival,
			ScheduledFor: time.Now().UTC().Add(time.Hour),
			Content:      "hi",
		})
	}

	messages, pagination, err := svc.ListScheduledMessages(ctx, 1, "", "", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 3 {
		t.Errorf("page 2 size = %d, want 3", len(messages))
	}
	if pagination["total_count"] != 7 {
		t.Errorf("total_count = %d, want 7", pagination["total_count"])
	}
	if pagination["total_pages"] != 3 {
		t.Errorf("total_pages = %d, want 3", pagination["total_pages"])
	}

	// Oversized page size gets clamped, garbage page resets to 1.
	_, pagination, err = svc.ListScheduledMessages(ctx, 1, "", "", -5, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if pagination["page"] != 1 || pagination["page_size"] != 100 {
		t.Errorf("pagination = %v, want page 1 size 100", pagination)
	}
}

func TestUpdateSettingsNormalizesBadInput(t *testing.T) {
	settingsRepo := &mockSettingsRepo{}
	svc := &service.JourneyService{
		Messages: newMockMessageRepo(),
		Settings: settingsRepo,
		Bookings: &mockBookingRepo{},
		Tenants:  &mockTenantRepo{},
		Delivery: &mockDelivery{},
		Log:      zap.NewNop(),
	}

	updated, err := svc.UpdateSettings(context.Background(), 1, &model.GuestJourneySettings{
		PreArrivalEnabled:        true,
		PreArrivalTime:           "25:99",
		PreArrivalDaysBefore:     -3,
		WelcomeSettledHoursAfter: 0,
		Timezone:                 "Mars/Olympus",
	})
	if err != nil {
		t.Fatal(err)
	}

	if updated.PreArrivalTime != model.DefaultPreArrivalTime {
		t.Errorf("pre_arrival_time = %q, want default", updated.PreArrivalTime)
	}
	if updated.PreArrivalDaysBefore != model.DefaultPreArrivalDays {
		t.Errorf("pre_arrival_days_before = %d, want default", updated.PreArrivalDaysBefore)
	}
	if updated.WelcomeSettledHoursAfter != model.DefaultWelcomeSettledHrs {
		t.Errorf("welcome_settled_hours_after = %d, want default", updated.WelcomeSettledHoursAfter)
	}
	if updated.Timezone != model.DefaultTimezone {
		t.Errorf("timezone = %q, want default", updated.Timezone)
	}
}
