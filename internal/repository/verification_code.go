package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sharepool/backend/internal/domain"
)

type verificationCodeRepository struct {
	db *sqlx.DB
}

func newVerificationCodeRepository(db *sqlx.DB) *verificationCodeRepository {
	return &verificationCodeRepository{
		db: db,
	}
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	return r.create(ctx, r.db, code)
}

func (r *verificationCodeRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, code *domain.VerificationCode) error {
	return r.create(ctx, tx, code)
}

func (r *verificationCodeRepository) create(ctx context.Context, q sqlx.ExtContext, code *domain.VerificationCode) error {
	const op = "repository.verificationCode.Create"

	const query = `
    INSERT INTO verification_codes (id, destination, channel, code, expires_at, consumed, attempts, created_at)
    VALUES (uuid_to_bin(:id), :destination, :channel, :code, :expires_at, :consumed, :attempts, :created_at)
    `

	res, err := sqlx.NamedExecContext(ctx, q, query, code)
	if err != nil {
		return fmt.Errorf("%s: insert verification code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

// GetLatest returns the most recently created record for the pair regardless
// of its state. Used for the cooldown check.
func (r *verificationCodeRepository) GetLatest(ctx context.Context, destination string, channel domain.Channel) (*domain.VerificationCode, error) {
	const op = "repository.verificationCode.GetLatest"

	const query = `
    SELECT id, destination, channel, code, expires_at, consumed, attempts, created_at
    FROM verification_codes
    WHERE destination = ? AND channel = ?
    ORDER BY created_at DESC, id DESC
    LIMIT 1
    `

	var code domain.VerificationCode
	if err := r.db.GetContext(ctx, &code, query, destination, channel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification code failed: %w", op, err)
	}

	return &code, nil
}

// GetLatestUsable returns the most recent unconsumed, unexpired record for the
// pair. Attempt-exhausted records are still returned: the caller reports those
// as locked instead of falling through to an older code.
func (r *verificationCodeRepository) GetLatestUsable(ctx context.Context, destination string, channel domain.Channel, now time.Time) (*domain.VerificationCode, error) {
	const op = "repository.verificationCode.GetLatestUsable"

	const query = `
    SELECT id, destination, channel, code, expires_at, consumed, attempts, created_at
    FROM verification_codes
    WHERE destination = ? AND channel = ? AND consumed = false AND expires_at > ?
    ORDER BY created_at DESC, id DESC
    LIMIT 1
    `

	var code domain.VerificationCode
	if err := r.db.GetContext(ctx, &code, query, destination, channel, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification code failed: %w", op, err)
	}

	return &code, nil
}

func (r *verificationCodeRepository) ConsumeAllActive(ctx context.Context, destination string, channel domain.Channel) error {
	return r.consumeAllActive(ctx, r.db, destination, channel)
}

func (r *verificationCodeRepository) ConsumeAllActiveTx(ctx context.Context, tx *sqlx.Tx, destination string, channel domain.Channel) error {
	return r.consumeAllActive(ctx, tx, destination, channel)
}

// consumeAllActive supersedes every outstanding code for the pair. Zero rows
// is fine: superseding an already-consumed record is a no-op.
func (r *verificationCodeRepository) consumeAllActive(ctx context.Context, q sqlx.ExtContext, destination string, channel domain.Channel) error {
	const op = "repository.verificationCode.ConsumeAllActive"

	const query = `
    UPDATE verification_codes
    SET consumed = true
    WHERE destination = ? AND channel = ? AND consumed = false
    `

	if _, err := q.ExecContext(ctx, query, destination, channel); err != nil {
		return fmt.Errorf("%s: update verification codes failed: %w", op, err)
	}

	return nil
}

// IncrementAttempts bumps the attempt counter by one, guarded on the value the
// caller read so two near-simultaneous validations cannot lose an update.
// Returns domain.ErrNoRowsAffected when the guard no longer holds.
func (r *verificationCodeRepository) IncrementAttempts(ctx context.Context, id uuid.UUID, fromAttempts int) error {
	const op = "repository.verificationCode.IncrementAttempts"

	const query = `
    UPDATE verification_codes
    SET attempts = attempts + 1
    WHERE id = uuid_to_bin(?) AND consumed = false AND attempts = ?
    `

	res, err := r.db.ExecContext(ctx, query, id, fromAttempts)
	if err != nil {
		return fmt.Errorf("%s: update verification code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

// Consume marks a record validated, guarded on it still being unconsumed.
// Returns domain.ErrNoRowsAffected when another request got there first.
func (r *verificationCodeRepository) Consume(ctx context.Context, id uuid.UUID) error {
	const op = "repository.verificationCode.Consume"

	const query = `
    UPDATE verification_codes
    SET consumed = true
    WHERE id = uuid_to_bin(?) AND consumed = false
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: update verification code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

// DeleteUnconsumedByID is the compensating delete after a failed dispatch. It
// is scoped to the exact id while still unconsumed, so it can never remove a
// newer record created by a concurrent issuance. Zero rows is a no-op.
func (r *verificationCodeRepository) DeleteUnconsumedByID(ctx context.Context, id uuid.UUID) error {
	const op = "repository.verificationCode.DeleteUnconsumedByID"

	const query = `
    DELETE FROM verification_codes
    WHERE id = uuid_to_bin(?) AND consumed = false
    `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: delete verification code failed: %w", op, err)
	}

	return nil
}
