package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sharepool/backend/internal/config"
	"github.com/sharepool/backend/internal/domain"
	"github.com/sharepool/backend/internal/repository"
	"github.com/sharepool/backend/pkg/logger"
	"github.com/sharepool/backend/pkg/otp"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type otpService struct {
	codes      repository.VerificationCodes
	dispatcher Dispatcher
	generator  otp.Generator
	config     config.OTPConfig
	now        func() time.Time
}

func newOTPService(codes repository.VerificationCodes,
	dispatcher Dispatcher,
	generator otp.Generator,
	config config.OTPConfig,
) *otpService {
	return &otpService{
		codes:      codes,
		dispatcher: dispatcher,
		generator:  generator,
		config:     config,
		now:        time.Now,
	}
}

// Issue creates and delivers a fresh code for the pair. Destination must
// already be normalized by the caller.
func (s *otpService) Issue(ctx context.Context, destination string, channel domain.Channel) error {
	return s.issue(ctx, nil, destination, channel)
}

// IssueTx is Issue running its supersede-then-insert inside the caller's
// transaction, for callers that bind a contact method as part of a larger
// business transaction.
func (s *otpService) IssueTx(ctx context.Context, tx *sqlx.Tx, destination string, channel domain.Channel) error {
	return s.issue(ctx, tx, destination, channel)
}

func (s *otpService) issue(ctx context.Context, tx *sqlx.Tx, destination string, channel domain.Channel) error {
	now := s.now()

	// Cooldown counts from the last record for the pair, consumed or not.
	last, err := s.codes.GetLatest(ctx, destination, channel)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get latest verification code failed: %w", err)
	}
	if last != nil {
		if wait := s.config.Cooldown - now.Sub(last.CreatedAt); wait > 0 {
			return &CooldownError{RetryAfter: wait}
		}
	}

	// A new issuance always invalidates the previous unused code, expired
	// or not, before the insert.
	if tx != nil {
		err = s.codes.ConsumeAllActiveTx(ctx, tx, destination, channel)
	} else {
		err = s.codes.ConsumeAllActive(ctx, destination, channel)
	}
	if err != nil {
		return fmt.Errorf("supersede verification codes failed: %w", err)
	}

	code, err := s.generator.Generate(s.config.CodeLength)
	if err != nil {
		return fmt.Errorf("generate verification code failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate verification code id failed: %w", err)
	}

	record := &domain.VerificationCode{
		ID:          id,
		Destination: destination,
		Channel:     channel,
		Code:        code,
		ExpiresAt:   now.Add(s.config.CodeTTL),
		Consumed:    false,
		Attempts:    0,
		CreatedAt:   now,
	}

	if tx != nil {
		err = s.codes.CreateTx(ctx, tx, record)
	} else {
		err = s.codes.Create(ctx, record)
	}
	if err != nil {
		return fmt.Errorf("create verification code failed: %w", err)
	}

	if err := s.dispatcher.Dispatch(ctx, channel, destination, code); err != nil {
		// An undelivered code must not burn the cooldown window. The
		// delete is scoped to this id while unconsumed, so it cannot
		// race away a newer record.
		if delErr := s.codes.DeleteUnconsumedByID(ctx, id); delErr != nil {
			logger.Error("rollback of undelivered verification code failed",
				zap.Error(delErr), zap.String("id", id.String()), zap.String("channel", string(channel)))
		}
		return err
	}

	logger.Info("verification code issued", zap.String("channel", string(channel)))

	return nil
}

// Validate checks a submitted code against the latest live record for the
// pair, consuming it on a match and spending an attempt on a mismatch.
func (s *otpService) Validate(ctx context.Context, destination string, channel domain.Channel, submitted string) error {
	record, err := s.codes.GetLatestUsable(ctx, destination, channel, s.now())
	if errors.Is(err, domain.ErrNotFound) {
		return ErrCodeInvalidOrExpired
	}
	if err != nil {
		return fmt.Errorf("get usable verification code failed: %w", err)
	}

	// Read-only check: an exhausted record stays in place until it is
	// superseded or expires, it is just unusable.
	if record.Attempts >= s.config.MaxAttempts {
		return ErrCodeLocked
	}

	if submitted != record.Code {
		err := s.codes.IncrementAttempts(ctx, record.ID, record.Attempts)
		if errors.Is(err, domain.ErrNoRowsAffected) {
			// Lost the race against a concurrent validation.
			return ErrCodeInvalidOrExpired
		}
		if err != nil {
			return fmt.Errorf("increment verification attempts failed: %w", err)
		}

		return &IncorrectCodeError{AttemptsLeft: s.config.MaxAttempts - record.Attempts - 1}
	}

	err = s.codes.Consume(ctx, record.ID)
	if errors.Is(err, domain.ErrNoRowsAffected) {
		return ErrCodeInvalidOrExpired
	}
	if err != nil {
		return fmt.Errorf("consume verification code failed: %w", err)
	}

	logger.Info("verification code validated", zap.String("channel", string(channel)))

	return nil
}
