package repository

import (
	"context"
	"database/sql"
	"fmt"

	appErrors "github.com/tshekom8206/staybotplatform-sub005/internal/errors"
	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
)

type BookingRepositoryInterface interface {
	GetByID(ctx context.Context, tenantID, id int) (*model.Booking, error)
	// ListForBroadcast resolves the phones a broadcast scope fans out to.
	ListForBroadcast(ctx context.Context, tenantID int, scope string) ([]*model.Booking, error)
}

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, tenant_id, guest_name, phone, COALESCE(room_number, ''),
	       checkin_date, checkout_date, status, is_repeat_guest, created_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID, &b.TenantID, &b.GuestName, &b.Phone, &b.RoomNumber,
		&b.CheckinDate, &b.CheckoutDate, &b.Status, &b.IsRepeatGuest, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, tenantID, id int) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1 AND tenant_id=$2`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewBookingNotFound(id)
		}
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) ListForBroadcast(ctx context.Context, tenantID int, scope string) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id=$1 AND phone != ''`

	switch scope {
	case model.ScopeActiveOnly:
		query += ` AND status='CheckedIn'`
	case model.ScopeRecentGuests:
		query += ` AND (status='CheckedIn' OR checkout_date >= NOW() - INTERVAL '7 days')`
	case model.ScopeAllGuests:
		// no extra filter
	default:
		return nil, fmt.Errorf("unrecognized broadcast scope: %s", scope)
	}

	query += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []*model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepositoryInterface = (*BookingRepository)(nil)
