package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sharepool/backend/internal/domain"
)

var (
	ErrUnknownChannel       = errors.New("unknown channel")
	ErrCodeInvalidOrExpired = errors.New("verification code is invalid or expired")
	ErrCodeLocked           = errors.New("verification code is locked, request a new one")
)

// CooldownError is returned when a code was issued for the pair too recently.
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("a code was sent recently, retry in %d seconds", int(math.Ceil(e.RetryAfter.Seconds())))
}

// IncorrectCodeError carries how many attempts remain on the current code.
type IncorrectCodeError struct {
	AttemptsLeft int
}

func (e *IncorrectCodeError) Error() string {
	if e.AttemptsLeft <= 0 {
		return "incorrect code, that was the last attempt"
	}
	return fmt.Sprintf("incorrect code, %d attempts left", e.AttemptsLeft)
}

// DispatchError is a delivery failure with a message safe to show to the
// user. Transport detail stays in the logs.
type DispatchError struct {
	Channel domain.Channel
	Message string
}

func (e *DispatchError) Error() string {
	return e.Message
}
