package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the Postgres store uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresRepository stores activities and registrations in PostgreSQL.
type PostgresRepository struct {
	db  DB
	now func() time.Time
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// List returns all activities in creation order with participants in
// sign-up order.
func (r *PostgresRepository) List(ctx context.Context) (model.Collection, error) {
	query, args, err := psql.
		Select("a.name", "a.description", "a.schedule", "a.max_participants", "r.email").
		From("activities a").
		LeftJoin("registrations r ON r.activity_name = a.name").
		OrderBy("a.position", "r.created_at", "r.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	out := model.Collection{}
	for rows.Next() {
		var (
			e     model.Entry
			email *string
		)
		if err := rows.Scan(&e.Name, &e.Description, &e.Schedule, &e.MaxParticipants, &email); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}

		// Rows arrive grouped by activity; start a new entry on a name change.
		if n := len(out); n == 0 || out[n-1].Name != e.Name {
			e.Participants = []string{}
			out = append(out, e)
		}
		if email != nil {
			last := &out[len(out)-1]
			last.Participants = append(last.Participants, *email)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return out, nil
}

// Signup registers email inside a transaction that holds a row lock on the
// activity.
//
// Two concurrent sign-ups that both read the participant count before either
// inserts would both see a free place and overbook the activity. Selecting
// the activity row FOR UPDATE serialises them: the second transaction blocks
// on the lock until the first commits, then sees the new count.
func (r *PostgresRepository) Signup(ctx context.Context, activity, email string) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Step 1: lock the activity row.
	query, args, err := psql.
		Select("max_participants").
		From("activities").
		Where(squirrel.Eq{"name": activity}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build lock query: %w", err)
	}
	var capacity int
	if err = tx.QueryRow(ctx, query, args...).Scan(&capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock activity row: %w", err)
	}

	// Step 2: reject duplicates.
	query, args, err = psql.
		Select("COUNT(*)").
		From("registrations").
		Where(squirrel.Eq{"activity_name": activity, "email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build duplicate query: %w", err)
	}
	var dupCount int
	if err = tx.QueryRow(ctx, query, args...).Scan(&dupCount); err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if dupCount > 0 {
		return ErrAlreadyRegistered
	}

	// Step 3: guard capacity.
	query, args, err = psql.
		Select("COUNT(*)").
		From("registrations").
		Where(squirrel.Eq{"activity_name": activity}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build count query: %w", err)
	}
	var booked int
	if err = tx.QueryRow(ctx, query, args...).Scan(&booked); err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	if booked >= capacity {
		return ErrActivityFull
	}

	// Step 4: insert the registration.
	query, args, err = psql.
		Insert("registrations").
		Columns("id", "activity_name", "email", "created_at").
		Values(uuid.New(), activity, email, r.now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Unregister deletes the registration of email for activity.
func (r *PostgresRepository) Unregister(ctx context.Context, activity, email string) error {
	query, args, err := psql.
		Select("1").
		From("activities").
		Where(squirrel.Eq{"name": activity}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build exists query: %w", err)
	}
	var one int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get activity: %w", err)
	}

	query, args, err = psql.
		Delete("registrations").
		Where(squirrel.Eq{"activity_name": activity, "email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotRegistered
	}
	return nil
}
