package repository

import (
	"context"
	"database/sql"

	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
)

type SettingsRepositoryInterface interface {
	GetOrCreate(ctx context.Context, tenantID int) (*model.GuestJourneySettings, error)
	Update(ctx context.Context, s *model.GuestJourneySettings) error
}

type SettingsRepository struct {
	DB *sql.DB
}

const settingsColumns = `id, tenant_id,
	       pre_arrival_enabled, pre_arrival_days_before, pre_arrival_time, pre_arrival_template,
	       checkin_day_enabled, checkin_day_time, checkin_day_template,
	       welcome_settled_enabled, welcome_settled_hours_after, welcome_settled_template,
	       mid_stay_enabled, mid_stay_time, mid_stay_template,
	       pre_checkout_enabled, pre_checkout_time, pre_checkout_template,
	       post_stay_enabled, post_stay_time, post_stay_template,
	       COALESCE(welcome_image_url, ''), include_photo_in_welcome, timezone,
	       created_at, updated_at`

func scanSettings(row interface{ Scan(...any) error }) (*model.GuestJourneySettings, error) {
	var s model.GuestJourneySettings
	err := row.Scan(
		&s.ID, &s.TenantID,
		&s.PreArrivalEnabled, &s.PreArrivalDaysBefore, &s.PreArrivalTime, &s.PreArrivalTemplate,
		&s.CheckinDayEnabled, &s.CheckinDayTime, &s.CheckinDayTemplate,
		&s.WelcomeSettledEnabled, &s.WelcomeSettledHoursAfter, &s.WelcomeSettledTemplate,
		&s.MidStayEnabled, &s.MidStayTime, &s.MidStayTemplate,
		&s.PreCheckoutEnabled, &s.PreCheckoutTime, &s.PreCheckoutTemplate,
		&s.PostStayEnabled, &s.PostStayTime, &s.PostStayTemplate,
		&s.WelcomeImageURL, &s.IncludePhotoInWelcome, &s.Timezone,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreate returns the tenant's settings row, inserting the defaults on
// first access.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, tenantID int) (*model.GuestJourneySettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM guest_journey_settings WHERE tenant_id=$1`
	s, err := scanSettings(r.DB.QueryRowContext(ctx, query, tenantID))
	if err == nil {
		return s, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	d := model.DefaultGuestJourneySettings(tenantID)
	insert := `
		INSERT INTO guest_journey_settings
		(tenant_id,
		 pre_arrival_enabled, pre_arrival_days_before, pre_arrival_time,
		 checkin_day_enabled, checkin_day_time,
		 welcome_settled_enabled, welcome_settled_hours_after,
		 mid_stay_enabled, mid_stay_time,
		 pre_checkout_enabled, pre_checkout_time,
		 post_stay_enabled, post_stay_time,
		 include_photo_in_welcome, timezone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	err = r.DB.QueryRowContext(ctx, insert,
		d.TenantID,
		d.PreArrivalEnabled, d.PreArrivalDaysBefore, d.PreArrivalTime,
		d.CheckinDayEnabled, d.CheckinDayTime,
		d.WelcomeSettledEnabled, d.WelcomeSettledHoursAfter,
		d.MidStayEnabled, d.MidStayTime,
		d.PreCheckoutEnabled, d.PreCheckoutTime,
		d.PostStayEnabled, d.PostStayTime,
		d.IncludePhotoInWelcome, d.Timezone,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *model.GuestJourneySettings) error {
	query := `
		UPDATE guest_journey_settings
		SET pre_arrival_enabled=$1, pre_arrival_days_before=$2, pre_arrival_time=$3, pre_arrival_template=$4,
		    checkin_day_enabled=$5, checkin_day_time=$6, checkin_day_template=$7,
		    welcome_settled_enabled=$8, welcome_settled_hours_after=$9, welcome_settled_template=$10,
		    mid_stay_enabled=$11, mid_stay_time=$12, mid_stay_template=$13,
		    pre_checkout_enabled=$14, pre_checkout_time=$15, pre_checkout_template=$16,
		    post_stay_enabled=$17, post_stay_time=$18, post_stay_template=$19,
		    welcome_image_url=NULLIF($20, ''), include_photo_in_welcome=$21, timezone=$22,
		    updated_at=NOW()
		WHERE tenant_id=$23
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.PreArrivalEnabled, s.PreArrivalDaysBefore, s.PreArrivalTime, s.PreArrivalTemplate,
		s.CheckinDayEnabled, s.CheckinDayTime, s.CheckinDayTemplate,
		s.WelcomeSettledEnabled, s.WelcomeSettledHoursAfter, s.WelcomeSettledTemplate,
		s.MidStayEnabled, s.MidStayTime, s.MidStayTemplate,
		s.PreCheckoutEnabled, s.PreCheckoutTime, s.PreCheckoutTemplate,
		s.PostStayEnabled, s.PostStayTime, s.PostStayTemplate,
		s.WelcomeImageURL, s.IncludePhotoInWelcome, s.Timezone,
		s.TenantID,
	)
	return err
}

var _ SettingsRepositoryInterface = (*SettingsRepository)(nil)
