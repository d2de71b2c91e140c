package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
)

type ScheduledMessageRepositoryInterface interface {
	// Upsert by the (booking_id, message_type) identity. A pending row is
	// updated in place; a terminal or failed row is returned untouched.
	Upsert(ctx context.Context, msg *model.ScheduledMessage) (*model.ScheduledMessage, bool, error)
	GetByBookingAndType(ctx context.Context, bookingID int, msgType model.MessageType) (*model.ScheduledMessage, error)
	GetByID(ctx context.Context, id int) (*model.ScheduledMessage, error)

	// Due scan + atomic claim
	ListDue(ctx context.Context, now time.Time, limit int) ([]*model.ScheduledMessage, error)
	Claim(ctx context.Context, id int) (bool, error)

	// Outcome recording
	MarkSent(ctx context.Context, id int, method model.DeliveryMethod, whatsAppFailureReason string, sentAt time.Time) error
	MarkFailed(ctx context.Context, id int, errorMessage, whatsAppFailureReason string) error
	MarkCancelled(ctx context.Context, id int) error
	CancelPendingForBooking(ctx context.Context, bookingID int) (int, error)

	// Query surface
	List(ctx context.Context, tenantID int, status, msgType string, offset, limit int) ([]*model.ScheduledMessage, int, error)
}

type ScheduledMessageRepository struct {
	DB *sql.DB
}

const scheduledMessageColumns = `id, tenant_id, booking_id, phone, message_type, scheduled_for, content,
	       COALESCE(media_url, ''), status, sent_at, COALESCE(error_message, ''), retry_count,
	       successful_method, COALESCE(whatsapp_failure_reason, ''), created_at, updated_at`

func (r *ScheduledMessageRepository) scan(row interface{ Scan(...any) error }) (*model.ScheduledMessage, error) {
	var m model.ScheduledMessage
	err := row.Scan(
		&m.ID, &m.TenantID, &m.BookingID, &m.Phone, &m.MessageType, &m.ScheduledFor, &m.Content,
		&m.MediaURL, &m.Status, &m.SentAt, &m.ErrorMessage, &m.RetryCount,
		&m.SuccessfulMethod, &m.WhatsAppFailureReason, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert enforces the one-row-per-(booking,type) invariant. The second return
// value reports whether a new row was created.
func (r *ScheduledMessageRepository) Upsert(ctx context.Context, msg *model.ScheduledMessage) (*model.ScheduledMessage, bool, error) {
	existing, err := r.GetByBookingAndType(ctx, msg.BookingID, msg.MessageType)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		// Sent and cancelled rows are terminal; a failed row stays failed
		// until an operator reschedules. Only pending rows move.
		if existing.Status != model.StatusPending {
			return existing, false, nil
		}

		query := `
			UPDATE scheduled_messages
			SET phone=$1, scheduled_for=$2, content=$3, media_url=NULLIF($4, ''), updated_at=NOW()
			WHERE id=$5 AND status='pending'
		`
		if _, err := r.DB.ExecContext(ctx, query,
			msg.Phone, msg.ScheduledFor, msg.Content, msg.MediaURL, existing.ID); err != nil {
			return nil, false, err
		}
		updated, err := r.GetByID(ctx, existing.ID)
		return updated, false, err
	}

	query := `
		INSERT INTO scheduled_messages
		(tenant_id, booking_id, phone, message_type, scheduled_for, content, media_url,
		 status, retry_count, successful_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), 'pending', 0, 'none', NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = r.DB.QueryRowContext(ctx, query,
		msg.TenantID, msg.BookingID, msg.Phone, msg.MessageType,
		msg.ScheduledFor, msg.Content, msg.MediaURL,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return nil, false, err
	}

	msg.Status = model.StatusPending
	msg.SuccessfulMethod = model.MethodNone
	return msg, true, nil
}

func (r *ScheduledMessageRepository) GetByID(ctx context.Context, id int) (*model.ScheduledMessage, error) {
	query := `SELECT ` + scheduledMessageColumns + ` FROM scheduled_messages WHERE id=$1`
	m, err := r.scan(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *ScheduledMessageRepository) GetByBookingAndType(ctx context.Context, bookingID int, msgType model.MessageType) (*model.ScheduledMessage, error) {
	query := `SELECT ` + scheduledMessageColumns + `
	          FROM scheduled_messages
	          WHERE booking_id=$1 AND message_type=$2`
	m, err := r.scan(r.DB.QueryRowContext(ctx, query, bookingID, msgType))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// ListDue returns pending rows whose fire time has passed, oldest first.
func (r *ScheduledMessageRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*model.ScheduledMessage, error) {
	query := `SELECT ` + scheduledMessageColumns + `
	          FROM scheduled_messages
	          WHERE status='pending' AND scheduled_for <= $1
	          ORDER BY scheduled_for ASC
	          LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*model.ScheduledMessage{}
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Claim transitions a row pending -> sending. The conditional update succeeds
// for at most one concurrent caller, so at most one delivery attempt per row
// is ever in flight.
func (r *ScheduledMessageRepository) Claim(ctx context.Context, id int) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE scheduled_messages SET status='sending', updated_at=NOW() WHERE id=$1 AND status='pending'`,
		id,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *ScheduledMessageRepository) MarkSent(ctx context.Context, id int, method model.DeliveryMethod, whatsAppFailureReason string, sentAt time.Time) error {
	query := `
		UPDATE scheduled_messages
		SET status='sent', sent_at=$1, successful_method=$2,
		    whatsapp_failure_reason=NULLIF($3, ''), error_message=NULL, updated_at=NOW()
		WHERE id=$4
	`
	_, err := r.DB.ExecContext(ctx, query, sentAt, method, whatsAppFailureReason, id)
	return err
}

func (r *ScheduledMessageRepository) MarkFailed(ctx context.Context, id int, errorMessage, whatsAppFailureReason string) error {
	query := `
		UPDATE scheduled_messages
		SET status='failed', error_message=$1, whatsapp_failure_reason=NULLIF($2, ''),
		    retry_count=retry_count+1, updated_at=NOW()
		WHERE id=$3
	`
	_, err := r.DB.ExecContext(ctx, query, errorMessage, whatsAppFailureReason, id)
	return err
}

func (r *ScheduledMessageRepository) MarkCancelled(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE scheduled_messages SET status='cancelled', updated_at=NOW() WHERE id=$1`, id)
	return err
}

// CancelPendingForBooking flips every pending row for the booking to
// cancelled and reports how many were affected.
func (r *ScheduledMessageRepository) CancelPendingForBooking(ctx context.Context, bookingID int) (int, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE scheduled_messages SET status='cancelled', updated_at=NOW()
		 WHERE booking_id=$1 AND status='pending'`,
		bookingID,
	)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

func (r *ScheduledMessageRepository) List(ctx context.Context, tenantID int, status, msgType string, offset, limit int) ([]*model.ScheduledMessage, int, error) {
	query := `SELECT ` + scheduledMessageColumns + ` FROM scheduled_messages WHERE tenant_id=$1`
	args := []interface{}{tenantID}
	argPos := 2

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if msgType != "" {
		query += fmt.Sprintf(" AND message_type=$%d", argPos)
		args = append(args, msgType)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY scheduled_for DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages := []*model.ScheduledMessage{}
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM scheduled_messages WHERE tenant_id=$1`
	argsCount := []interface{}{tenantID}
	argPosCount := 2
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
		argsCount = append(argsCount, status)
		argPosCount++
	}
	if msgType != "" {
		countQuery += fmt.Sprintf(" AND message_type=$%d", argPosCount)
		argsCount = append(argsCount, msgType)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

var _ ScheduledMessageRepositoryInterface = (*ScheduledMessageRepository)(nil)
