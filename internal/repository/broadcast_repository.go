package repository

import (
	"context"
	"database/sql"
	"time"

	appErrors "github.com/tshekom8206/staybotplatform-sub005/internal/errors"
	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
)

type BroadcastRepositoryInterface interface {
	Create(ctx context.Context, b *model.BroadcastMessage) error
	GetByID(ctx context.Context, tenantID, id int) (*model.BroadcastMessage, error)
	UpdateStatus(ctx context.Context, id int, status string) error

	// GetByRecipient resolves a queued recipient id back to its broadcast.
	GetByRecipient(ctx context.Context, recipientID int) (*model.BroadcastMessage, error)

	CreateRecipient(ctx context.Context, rec *model.BroadcastRecipient) error
	GetRecipientByID(ctx context.Context, id int) (*model.BroadcastRecipient, error)
	MarkRecipientSent(ctx context.Context, id int, sentAt time.Time) error
	MarkRecipientFailed(ctx context.Context, id int, errorMessage string) error

	// CompleteIfDone flips the broadcast to completed once every recipient
	// reached a final delivery status, refreshing the counters either way.
	CompleteIfDone(ctx context.Context, broadcastID int) error
}

type BroadcastRepository struct {
	DB *sql.DB
}

func (r *BroadcastRepository) Create(ctx context.Context, b *model.BroadcastMessage) error {
	if b.Status == "" {
		b.Status = model.BroadcastPending
	}
	if b.CreatedBy == "" {
		b.CreatedBy = "System"
	}
	query := `
		INSERT INTO broadcast_messages
		(tenant_id, message_type, content, total_recipients, successful_deliveries,
		 failed_deliveries, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, 0, 0, $5, $6, NOW())
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		b.TenantID, b.MessageType, b.Content, b.TotalRecipients, b.Status, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *BroadcastRepository) GetByID(ctx context.Context, tenantID, id int) (*model.BroadcastMessage, error) {
	query := `
		SELECT id, tenant_id, message_type, content, total_recipients,
		       successful_deliveries, failed_deliveries, status, created_by,
		       created_at, completed_at
		FROM broadcast_messages
		WHERE id=$1 AND tenant_id=$2
	`
	var b model.BroadcastMessage
	err := r.DB.QueryRowContext(ctx, query, id, tenantID).Scan(
		&b.ID, &b.TenantID, &b.MessageType, &b.Content, &b.TotalRecipients,
		&b.SuccessfulDeliveries, &b.FailedDeliveries, &b.Status, &b.CreatedBy,
		&b.CreatedAt, &b.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewBroadcastNotFound(id)
		}
		return nil, err
	}
	return &b, nil
}

func (r *BroadcastRepository) GetByRecipient(ctx context.Context, recipientID int) (*model.BroadcastMessage, error) {
	query := `
		SELECT b.id, b.tenant_id, b.message_type, b.content, b.total_recipients,
		       b.successful_deliveries, b.failed_deliveries, b.status, b.created_by,
		       b.created_at, b.completed_at
		FROM broadcast_messages b
		JOIN broadcast_recipients r ON r.broadcast_message_id = b.id
		WHERE r.id=$1
	`
	var b model.BroadcastMessage
	err := r.DB.QueryRowContext(ctx, query, recipientID).Scan(
		&b.ID, &b.TenantID, &b.MessageType, &b.Content, &b.TotalRecipients,
		&b.SuccessfulDeliveries, &b.FailedDeliveries, &b.Status, &b.CreatedBy,
		&b.CreatedAt, &b.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewBroadcastNotFound(recipientID)
		}
		return nil, err
	}
	return &b, nil
}

func (r *BroadcastRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE broadcast_messages SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *BroadcastRepository) CreateRecipient(ctx context.Context, rec *model.BroadcastRecipient) error {
	if rec.DeliveryStatus == "" {
		rec.DeliveryStatus = "pending"
	}
	query := `
		INSERT INTO broadcast_recipients
		(broadcast_message_id, booking_id, phone, delivery_status, retry_count)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		rec.BroadcastMessageID, rec.BookingID, rec.Phone, rec.DeliveryStatus,
	).Scan(&rec.ID)
}

func (r *BroadcastRepository) GetRecipientByID(ctx context.Context, id int) (*model.BroadcastRecipient, error) {
	query := `
		SELECT id, broadcast_message_id, booking_id, phone, delivery_status,
		       COALESCE(error_message, ''), sent_at, retry_count
		FROM broadcast_recipients
		WHERE id=$1
	`
	var rec model.BroadcastRecipient
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.BroadcastMessageID, &rec.BookingID, &rec.Phone,
		&rec.DeliveryStatus, &rec.ErrorMessage, &rec.SentAt, &rec.RetryCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *BroadcastRepository) MarkRecipientSent(ctx context.Context, id int, sentAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE broadcast_recipients SET delivery_status='sent', sent_at=$1, error_message=NULL WHERE id=$2`,
		sentAt, id)
	return err
}

func (r *BroadcastRepository) MarkRecipientFailed(ctx context.Context, id int, errorMessage string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE broadcast_recipients
		 SET delivery_status='failed', error_message=$1, retry_count=retry_count+1
		 WHERE id=$2`,
		errorMessage, id)
	return err
}

func (r *BroadcastRepository) CompleteIfDone(ctx context.Context, broadcastID int) error {
	query := `
		UPDATE broadcast_messages b
		SET successful_deliveries = agg.sent,
		    failed_deliveries = agg.failed,
		    status = CASE WHEN agg.pending = 0 THEN 'completed' ELSE b.status END,
		    completed_at = CASE WHEN agg.pending = 0 THEN NOW() ELSE b.completed_at END
		FROM (
			SELECT
				COUNT(*) FILTER (WHERE delivery_status = 'sent') AS sent,
				COUNT(*) FILTER (WHERE delivery_status = 'failed') AS failed,
				COUNT(*) FILTER (WHERE delivery_status = 'pending') AS pending
			FROM broadcast_recipients
			WHERE broadcast_message_id = $1
		) agg
		WHERE b.id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, broadcastID)
	return err
}

var _ BroadcastRepositoryInterface = (*BroadcastRepository)(nil)
