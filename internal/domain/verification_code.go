package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Channel is the delivery channel a verification code is sent through.
type Channel string

const (
	ChannelEmail     Channel = "EMAIL"
	ChannelMessaging Channel = "MESSAGING"
)

func ParseChannel(value string) (Channel, error) {
	switch Channel(value) {
	case ChannelEmail:
		return ChannelEmail, nil
	case ChannelMessaging:
		return ChannelMessaging, nil
	}

	return "", fmt.Errorf("unknown channel %q", value)
}

// VerificationCode is a single short-lived code issued for one destination
// on one channel. A destination has at most one unconsumed code per channel:
// issuing a new one marks the older ones consumed first.
type VerificationCode struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Destination string    `json:"destination" db:"destination"`
	Channel     Channel   `json:"channel" db:"channel"`
	Code        string    `json:"-" db:"code"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`
	Consumed    bool      `json:"consumed" db:"consumed"`
	Attempts    int       `json:"attempts" db:"attempts"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
