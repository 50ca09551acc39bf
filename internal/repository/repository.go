package repository

import (
	"context"
	"time"

	"github.com/sharepool/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	VerificationCodes VerificationCodes
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		VerificationCodes: newVerificationCodeRepository(db),
	}
}

// VerificationCodes is the record store for issued codes. The Tx variants run
// the statement inside a caller-held transaction so supersede-then-insert can
// share scope with a larger business transaction.
type VerificationCodes interface {
	Create(ctx context.Context, code *domain.VerificationCode) error
	CreateTx(ctx context.Context, tx *sqlx.Tx, code *domain.VerificationCode) error
	GetLatest(ctx context.Context, destination string, channel domain.Channel) (*domain.VerificationCode, error)
	GetLatestUsable(ctx context.Context, destination string, channel domain.Channel, now time.Time) (*domain.VerificationCode, error)
	ConsumeAllActive(ctx context.Context, destination string, channel domain.Channel) error
	ConsumeAllActiveTx(ctx context.Context, tx *sqlx.Tx, destination string, channel domain.Channel) error
	IncrementAttempts(ctx context.Context, id uuid.UUID, fromAttempts int) error
	Consume(ctx context.Context, id uuid.UUID) error
	DeleteUnconsumedByID(ctx context.Context, id uuid.UUID) error
}
