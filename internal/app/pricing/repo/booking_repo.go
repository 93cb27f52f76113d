package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_booking"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_booking_option"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_coupon"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/committer"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/query"
)

// BookingRepo implements BookingRepository for Spanner.
type BookingRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_booking.Model
	coupons   *m_coupon.Model
	outbox    *OutboxRepo
}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(client *spanner.Client) contracts.BookingRepository {
	return &BookingRepo{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_booking.NewModel(),
		coupons:   m_coupon.NewModel(),
		outbox:    NewOutboxRepo(client),
	}
}

// Create inserts the booking, its option rows and the outbox events in one commit.
func (r *BookingRepo) Create(ctx context.Context, booking *domain.Booking, events []*contracts.OutboxEvent) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(bookingToData(booking)))
	for _, opt := range bookingOptionsToData(booking) {
		plan.Add(m_booking_option.InsertMut(opt))
	}
	plan.AddMultiple(r.outbox.InsertMuts(events))

	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID reads the booking and its option rows from one snapshot.
func (r *BookingRepo) GetByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_booking.TableName, spanner.Key{bookingID}, m_booking.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NewNotFoundError("booking", bookingID, domain.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("failed to read booking: %w", err)
	}

	var data m_booking.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse booking: %w", err)
	}

	stmt := query.From(m_booking_option.TableName).
		Select(m_booking_option.Columns()...).
		Where(query.Eq(m_booking_option.BookingID, bookingID)).
		OrderBy(m_booking_option.OptionID, query.Asc).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var options []*m_booking_option.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate booking options: %w", err)
		}
		var od m_booking_option.Data
		if err := row.ToStruct(&od); err != nil {
			return nil, fmt.Errorf("failed to parse booking option: %w", err)
		}
		options = append(options, &od)
	}

	return bookingFromData(&data, options)
}

// ApplyTransition commits a status change together with its coupon usage delta.
func (r *BookingRepo) ApplyTransition(ctx context.Context, t *contracts.Transition) (contracts.LedgerResult, error) {
	booking := t.Booking

	var result contracts.LedgerResult
	err := r.committer.InTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		result = contracts.LedgerResult{}

		row, err := txn.ReadRow(ctx, m_booking.TableName, spanner.Key{booking.ID()}, []string{m_booking.Status})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.NewNotFoundError("booking", booking.ID(), domain.ErrBookingNotFound)
			}
			return fmt.Errorf("failed to read booking status: %w", err)
		}
		var stored string
		if err := row.Column(0, &stored); err != nil {
			return fmt.Errorf("failed to parse booking status: %w", err)
		}
		if domain.BookingStatus(stored) != t.From {
			return fmt.Errorf("%w: booking %s is %s, expected %s", domain.ErrConcurrentBookingUpdate, booking.ID(), stored, t.From)
		}

		switch {
		case t.UsageDelta > 0:
			if err := incrementUsageTx(ctx, txn, r.coupons, booking.CouponID()); err != nil {
				return err
			}
		case t.UsageDelta < 0:
			res, err := decrementUsageTx(ctx, txn, r.coupons, booking.CouponID())
			if err != nil {
				return err
			}
			result = res
		}

		plan := committer.NewPlan()
		plan.Add(r.updateMut(booking))
		plan.AddMultiple(r.outbox.InsertMuts(t.Events))
		return plan.BufferInto(txn)
	})
	if err != nil {
		return contracts.LedgerResult{}, err
	}
	return result, nil
}

// updateMut writes only the dirty fields and bumps the version.
func (r *BookingRepo) updateMut(booking *domain.Booking) *spanner.Mutation {
	changes := booking.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldStatus) {
		updates[m_booking.Status] = string(booking.Status())
	}
	updates[m_booking.UpdatedAt] = booking.UpdatedAt()
	updates[m_booking.Version] = booking.Version() + 1

	return r.model.UpdateMut(booking.ID(), updates)
}
