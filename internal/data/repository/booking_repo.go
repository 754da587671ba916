package repository

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows admin listing queries. Nil fields are not applied.
type BookingFilter struct {
	Status       *entity.BookingStatus
	ResourceType *entity.ResourceType
	Date         *time.Time
}

type BookingRepository interface {
	// CreateIfFree inserts the booking unless a pending/confirmed booking for
	// the same resource/date overlaps its interval. The check and the insert
	// run in one transaction serialized per (resource, date), so two
	// concurrent calls for overlapping slots cannot both succeed. Returns the
	// conflicting bookings when the insert is refused.
	CreateIfFree(ctx context.Context, booking *entity.Booking) ([]*entity.Booking, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindActiveByDate(ctx context.Context, resourceType entity.ResourceType, date time.Time) ([]*entity.Booking, error)
	FindFiltered(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountFiltered(ctx context.Context, filter BookingFilter) (int64, error)

	// UpdateStatus transitions status only if the row still holds the expected
	// current status. Returns false when no row matched.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, resource_type, booking_date, start_min, end_min, status, name, email, phone, message, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.ResourceType,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Name,
		&b.Email,
		&b.Phone,
		&b.Message,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) CreateIfFree(ctx context.Context, booking *entity.Booking) ([]*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin admission transaction", zap.Error(err))
		return nil, fmt.Errorf("begin admission tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize admission per (resource, date). The advisory lock is scoped to
	// this transaction, so commit or rollback always releases it.
	lockKey := fmt.Sprintf("%s|%s", booking.ResourceType, booking.Date.Format("2006-01-02"))
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		r.log.Error("Failed to acquire admission lock",
			zap.Error(err),
			zap.String("lock_key", lockKey),
		)
		return nil, fmt.Errorf("acquire admission lock %s: %w", lockKey, err)
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE resource_type = $1
		  AND booking_date = $2
		  AND status IN ('pending', 'confirmed')
		  AND start_min < $4
		  AND $3 < end_min
		ORDER BY start_min
	`

	rows, err := tx.Query(ctx, query, booking.ResourceType, booking.Date, booking.StartTime, booking.EndTime)
	if err != nil {
		r.log.Error("Failed to check overlapping bookings",
			zap.Error(err),
			zap.String("lock_key", lockKey),
		)
		return nil, fmt.Errorf("check overlapping bookings: %w", err)
	}

	conflicts, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("scan overlapping bookings: %w", err)
	}

	if len(conflicts) > 0 {
		return conflicts, nil
	}

	insert := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.Exec(ctx, insert,
		booking.ID,
		booking.ResourceType,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.Message,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("insert booking %s: %w", booking.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit admission transaction", zap.Error(err))
		return nil, fmt.Errorf("commit admission tx: %w", err)
	}

	return nil, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindActiveByDate(ctx context.Context, resourceType entity.ResourceType, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE resource_type = $1
		  AND booking_date = $2
		  AND status IN ('pending', 'confirmed')
		ORDER BY start_min
	`

	rows, err := r.db.Query(ctx, query, resourceType, date)
	if err != nil {
		r.log.Error("Failed to find active bookings",
			zap.Error(err),
			zap.String("resource_type", string(resourceType)),
			zap.String("date", date.Format("2006-01-02")),
		)
		return nil, fmt.Errorf("find active bookings for %s on %s: %w",
			resourceType, date.Format("2006-01-02"), err)
	}

	bookings, err := collectBookings(rows)
	if err != nil {
		r.log.Error("Failed to scan booking rows", zap.Error(err))
		return nil, fmt.Errorf("scan booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) FindFiltered(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := buildBookingFilter(filter)

	query := fmt.Sprintf(`
		SELECT `+bookingColumns+`
		FROM bookings
		%s
		ORDER BY booking_date DESC, start_min DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings, err := collectBookings(rows)
	if err != nil {
		r.log.Error("Failed to scan booking rows", zap.Error(err))
		return nil, fmt.Errorf("scan booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountFiltered(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := buildBookingFilter(filter)

	var count int64
	err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM bookings %s`, where), args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func buildBookingFilter(filter BookingFilter) (string, []any) {
	where := ""
	var args []any

	add := func(clause string, value any) {
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.ResourceType != nil {
		add("resource_type = $%d", *filter.ResourceType)
	}
	if filter.Date != nil {
		add("booking_date = $%d", *filter.Date)
	}

	return where, args
}
