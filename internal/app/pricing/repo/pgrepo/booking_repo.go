package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

// BookingRepo implements BookingRepository for PostgreSQL.
type BookingRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(pool *pgxpool.Pool, logger *zap.Logger) contracts.BookingRepository {
	return &BookingRepo{pool: pool, logger: logger}
}

const insertBookingSQL = `
	INSERT INTO bookings (
		booking_id, service_id, coupon_id, booking_date, frequency, status,
		base_amount, frequency_discount, bulk_discount, coupon_discount,
		special_period_adjustment, final_amount, version, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9::numeric, $10::numeric,
		$11::numeric, $12::numeric, $13, $14, $15)`

const insertBookingOptionSQL = `
	INSERT INTO booking_options (booking_id, option_id, label, quantity, unit_price, total)
	VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric)`

const selectBookingSQL = `
	SELECT booking_id, service_id, coupon_id, booking_date, frequency, status,
		base_amount::text, frequency_discount::text, bulk_discount::text, coupon_discount::text,
		special_period_adjustment::text, final_amount::text, version, created_at, updated_at
	FROM bookings WHERE booking_id = $1`

const selectBookingOptionsSQL = `
	SELECT option_id, label, quantity, unit_price::text, total::text
	FROM booking_options WHERE booking_id = $1 ORDER BY option_id`

// Create inserts the booking, its option rows and the outbox events in one transaction.
func (r *BookingRepo) Create(ctx context.Context, booking *domain.Booking, events []*contracts.OutboxEvent) error {
	return withTransaction(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		a := booking.Amounts()
		var couponID *string
		if id := booking.CouponID(); id != "" {
			couponID = &id
		}

		_, err := tx.Exec(ctx, insertBookingSQL,
			booking.ID(), booking.ServiceID(), couponID, booking.BookingDate(), string(booking.Frequency()), string(booking.Status()),
			moneyArg(a.BaseAmount), moneyArg(a.FrequencyDiscount), moneyArg(a.BulkDiscount), moneyArg(a.CouponDiscount),
			moneyArg(a.SpecialPeriodAdjustment), moneyArg(a.FinalAmount), booking.Version(), booking.CreatedAt(), booking.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		batch := &pgx.Batch{}
		for _, opt := range booking.Options() {
			batch.Queue(insertBookingOptionSQL, booking.ID(), opt.OptionID, opt.Label, opt.Quantity, moneyArg(opt.UnitPrice), moneyArg(opt.Total))
		}
		queueOutboxInserts(batch, events)
		if batch.Len() > 0 {
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("failed to insert booking rows: %w", err)
			}
		}
		return nil
	})
}

// GetByID reads the booking and its option rows.
func (r *BookingRepo) GetByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var (
		id, serviceID, frequency, status string
		couponID                         *string
		bookingDate, createdAt, updated  time.Time
		amounts                          [6]string
		version                          int64
	)
	err := r.pool.QueryRow(ctx, selectBookingSQL, bookingID).Scan(
		&id, &serviceID, &couponID, &bookingDate, &frequency, &status,
		&amounts[0], &amounts[1], &amounts[2], &amounts[3], &amounts[4], &amounts[5],
		&version, &createdAt, &updated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("booking", bookingID, domain.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("failed to read booking: %w", err)
	}

	parsed := make([]*domain.Money, len(amounts))
	for i, s := range amounts {
		if parsed[i], err = parseMoney(s); err != nil {
			return nil, err
		}
	}
	st, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}

	options, err := r.options(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var coupon string
	if couponID != nil {
		coupon = *couponID
	}
	return domain.ReconstructBooking(
		id, serviceID, coupon, bookingDate, domain.Frequency(frequency), st,
		domain.BookingAmounts{
			BaseAmount:              parsed[0],
			FrequencyDiscount:       parsed[1],
			BulkDiscount:            parsed[2],
			CouponDiscount:          parsed[3],
			SpecialPeriodAdjustment: parsed[4],
			FinalAmount:             parsed[5],
		},
		options, version, createdAt, updated,
	), nil
}

func (r *BookingRepo) options(ctx context.Context, bookingID string) ([]domain.BookingOption, error) {
	rows, err := r.pool.Query(ctx, selectBookingOptionsSQL, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking options: %w", err)
	}
	defer rows.Close()

	var out []domain.BookingOption
	for rows.Next() {
		var (
			opt          domain.BookingOption
			price, total string
		)
		if err := rows.Scan(&opt.OptionID, &opt.Label, &opt.Quantity, &price, &total); err != nil {
			return nil, fmt.Errorf("failed to scan booking option: %w", err)
		}
		if opt.UnitPrice, err = parseMoney(price); err != nil {
			return nil, err
		}
		if opt.Total, err = parseMoney(total); err != nil {
			return nil, err
		}
		out = append(out, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booking options: %w", err)
	}
	return out, nil
}

// ApplyTransition commits a status change together with its coupon usage delta.
// The stored status is locked and compared with t.From first.
func (r *BookingRepo) ApplyTransition(ctx context.Context, t *contracts.Transition) (contracts.LedgerResult, error) {
	booking := t.Booking

	var result contracts.LedgerResult
	err := withTransaction(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		var stored string
		err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE booking_id = $1 FOR UPDATE`, booking.ID()).Scan(&stored)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewNotFoundError("booking", booking.ID(), domain.ErrBookingNotFound)
			}
			return fmt.Errorf("failed to read booking status: %w", err)
		}
		if domain.BookingStatus(stored) != t.From {
			return fmt.Errorf("%w: booking %s is %s, expected %s", domain.ErrConcurrentBookingUpdate, booking.ID(), stored, t.From)
		}

		switch {
		case t.UsageDelta > 0:
			if err := incrementUsageTx(ctx, tx, booking.CouponID()); err != nil {
				return err
			}
		case t.UsageDelta < 0:
			if result, err = decrementUsageTx(ctx, tx, booking.CouponID()); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx,
			`UPDATE bookings SET status = $2, version = version + 1, updated_at = $3 WHERE booking_id = $1`,
			booking.ID(), string(booking.Status()), booking.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		batch := &pgx.Batch{}
		queueOutboxInserts(batch, t.Events)
		if batch.Len() > 0 {
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("failed to insert outbox events: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return contracts.LedgerResult{}, err
	}
	return result, nil
}
