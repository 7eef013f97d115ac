package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists accounts. The profile-sync protocol is defined against
// this capability; the Postgres implementation is the production store and the
// in-memory one backs tests and dev mode.
type Repository interface {
	Create(ctx context.Context, acc Account) error
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	ReplaceProfile(ctx context.Context, id string, data UserData) (Account, error)
}

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account record.
func (r *PostgresRepository) Create(ctx context.Context, acc Account) error {
	accountID, err := uuid.Parse(acc.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts
        (id, email, password_hash, full_name, phone,
         weight, weight_photo, height, age, gender, location, state, village,
         created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		accountID, acc.Email, acc.PasswordHash, acc.FullName, acc.Phone,
		acc.Profile.Weight, acc.Profile.WeightPhoto, acc.Profile.Height, acc.Profile.Age,
		acc.Profile.Gender, acc.Profile.Location, acc.Profile.State, acc.Profile.Village,
		acc.CreatedAt.UTC(), acc.UpdatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateAccount
	}
	return err
}

// FindByEmail fetches an account by its unique email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(ctx, selectColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// FindByID fetches an account by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, selectColumns+` FROM accounts WHERE id = $1`, accountID)
	return scanAccount(row)
}

// ReplaceProfile overwrites fullName, phone and every profile subfield in one
// statement. Omitted optional fields arrive as empty strings and clear the
// stored values; there is no field-level merge.
func (r *PostgresRepository) ReplaceProfile(ctx context.Context, id string, data UserData) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	p := data.Profile
	row := r.db.QueryRow(ctx, `UPDATE accounts SET
        full_name = $1, phone = $2,
        weight = $3, weight_photo = $4, height = $5, age = $6,
        gender = $7, location = $8, state = $9, village = $10,
        updated_at = now()
        WHERE id = $11
        RETURNING `+scanColumns,
		data.FullName, data.Phone,
		p.Weight, p.WeightPhoto, p.Height, p.Age,
		p.Gender, p.Location, p.State, p.Village,
		accountID)
	return scanAccount(row)
}

const (
	scanColumns = `id, email, password_hash, full_name, phone,
        weight, weight_photo, height, age, gender, location, state, village,
        created_at, updated_at`
	selectColumns = `SELECT ` + scanColumns
)

func scanAccount(row pgx.Row) (Account, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		acc       Account
	)
	err := row.Scan(&id, &acc.Email, &acc.PasswordHash, &acc.FullName, &acc.Phone,
		&acc.Profile.Weight, &acc.Profile.WeightPhoto, &acc.Profile.Height, &acc.Profile.Age,
		&acc.Profile.Gender, &acc.Profile.Location, &acc.Profile.State, &acc.Profile.Village,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acc.ID = id.String()
	acc.CreatedAt = createdAt.UTC()
	acc.UpdatedAt = updatedAt.UTC()
	return acc, nil
}
