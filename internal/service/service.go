package service

import (
	"context"

	"github.com/sharepool/backend/internal/config"
	"github.com/sharepool/backend/internal/domain"
	"github.com/sharepool/backend/internal/repository"
	emailProvider "github.com/sharepool/backend/pkg/email"
	"github.com/sharepool/backend/pkg/otp"
	"github.com/sharepool/backend/pkg/sms"

	"github.com/jmoiron/sqlx"
)

type Services struct {
	OTP OTP
}

type Deps struct {
	Config       *config.Config
	OtpGenerator otp.Generator
	EmailSender  emailProvider.Sender
	SMSSender    sms.Sender
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	dispatcher := NewDispatcher(deps.EmailSender, deps.SMSSender, deps.Config.Email, deps.Config.OTP)

	return &Services{
		OTP: newOTPService(deps.Repos.VerificationCodes,
			dispatcher,
			deps.OtpGenerator,
			deps.Config.OTP,
		),
	}
}

type OTP interface {
	Issue(ctx context.Context, destination string, channel domain.Channel) error
	IssueTx(ctx context.Context, tx *sqlx.Tx, destination string, channel domain.Channel) error
	Validate(ctx context.Context, destination string, channel domain.Channel, code string) error
}
