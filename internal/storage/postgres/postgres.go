package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookingSync/internal/config"
	"bookingSync/internal/models"

	_ "github.com/lib/pq"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoBookings      = errors.New("no bookings stored")
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}

	if err = s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			code TEXT,
			status TEXT NOT NULL,
			experience TEXT NOT NULL,
			rate TEXT NOT NULL,
			booking_created TIMESTAMPTZ NOT NULL,
			participants INTEGER NOT NULL CHECK (participants >= 0),
			original_currency CHAR(3) NOT NULL,
			price_original_currency NUMERIC(10, 2) NOT NULL CHECK (price_original_currency >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_bookings_booking_created ON bookings (booking_created DESC);
		CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings (status)`

	if _, err := s.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// UpsertBookings writes a batch of bookings inside a single transaction,
// so a partially processed page is never visible to readers. Re-upserting
// an existing id overwrites every upstream-owned field but keeps created_at.
func (s *Storage) UpsertBookings(bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (
			id, code, status, experience, rate, booking_created,
			participants, original_currency, price_original_currency
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			status = EXCLUDED.status,
			experience = EXCLUDED.experience,
			rate = EXCLUDED.rate,
			booking_created = EXCLUDED.booking_created,
			participants = EXCLUDED.participants,
			original_currency = EXCLUDED.original_currency,
			price_original_currency = EXCLUDED.price_original_currency,
			updated_at = NOW()`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bookings {
		_, err = stmt.Exec(
			b.ID,
			nullableString(b.Code),
			b.Status,
			b.Experience,
			b.Rate,
			b.BookingCreated,
			b.Participants,
			b.OriginalCurrency,
			b.PriceOriginalCurrency,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert booking %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Storage) GetBooking(id string) (*models.Booking, error) {
	query := `
		SELECT id, code, status, experience, rate, booking_created,
			participants, original_currency, price_original_currency,
			created_at, updated_at
		FROM bookings
		WHERE id = $1`

	b, err := scanBooking(s.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

// ListBookings returns bookings whose booking_created falls inside the
// given bounds. Both bounds are optional and inclusive.
func (s *Storage) ListBookings(start, end *time.Time) ([]models.Booking, error) {
	query := `
		SELECT id, code, status, experience, rate, booking_created,
			participants, original_currency, price_original_currency,
			created_at, updated_at
		FROM bookings`

	var (
		conds []string
		args  []interface{}
	)

	if start != nil {
		args = append(args, *start)
		conds = append(conds, fmt.Sprintf("booking_created >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, *end)
		conds = append(conds, fmt.Sprintf("booking_created <= $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY booking_created DESC"

	return s.queryBookings(query, args...)
}

// ListActiveBookings returns bookings that can still change upstream.
func (s *Storage) ListActiveBookings() ([]models.Booking, error) {
	query := `
		SELECT id, code, status, experience, rate, booking_created,
			participants, original_currency, price_original_currency,
			created_at, updated_at
		FROM bookings
		WHERE status NOT IN ($1, $2)
		ORDER BY booking_created DESC`

	return s.queryBookings(query, models.StatusCancelled, models.StatusCompleted)
}

// LatestBookingCreated returns the newest upstream creation timestamp in
// the store, or ErrNoBookings when the store is empty.
func (s *Storage) LatestBookingCreated() (time.Time, error) {
	query := `SELECT MAX(booking_created) FROM bookings`

	var latest sql.NullTime
	if err := s.DB.QueryRow(query).Scan(&latest); err != nil {
		return time.Time{}, fmt.Errorf("failed to get latest booking time: %w", err)
	}

	if !latest.Valid {
		return time.Time{}, ErrNoBookings
	}

	return latest.Time, nil
}

func (s *Storage) queryBookings(query string, args ...interface{}) ([]models.Booking, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var (
		b    models.Booking
		code sql.NullString
	)

	err := row.Scan(
		&b.ID,
		&code,
		&b.Status,
		&b.Experience,
		&b.Rate,
		&b.BookingCreated,
		&b.Participants,
		&b.OriginalCurrency,
		&b.PriceOriginalCurrency,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Code = code.String

	return &b, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
