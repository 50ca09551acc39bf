package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sharepool/backend/internal/config"
	"github.com/sharepool/backend/internal/domain"
	emailProvider "github.com/sharepool/backend/pkg/email"
	"github.com/sharepool/backend/pkg/logger"
	"github.com/sharepool/backend/pkg/sms"

	"go.uber.org/zap"
)

// Dispatcher delivers a rendered verification message for a channel. It never
// persists anything and never returns the code in its result.
type Dispatcher interface {
	Dispatch(ctx context.Context, channel domain.Channel, destination string, code string) error
}

type channelDispatcher interface {
	dispatch(ctx context.Context, destination string, code string) error
}

type dispatchStrategy struct {
	channels map[domain.Channel]channelDispatcher
}

// NewDispatcher wires one implementation per channel. Adding a channel means
// one new implementation and one map entry.
func NewDispatcher(emailSender emailProvider.Sender, smsSender sms.Sender, emailCfg config.EmailConfig, otpCfg config.OTPConfig) Dispatcher {
	return &dispatchStrategy{
		channels: map[domain.Channel]channelDispatcher{
			domain.ChannelEmail: &emailDispatcher{
				sender:   emailSender,
				template: emailCfg.Templates.Verification,
				ttl:      otpCfg.CodeTTL,
			},
			domain.ChannelMessaging: &messagingDispatcher{
				sender: smsSender,
				ttl:    otpCfg.CodeTTL,
			},
		},
	}
}

func (d *dispatchStrategy) Dispatch(ctx context.Context, channel domain.Channel, destination string, code string) error {
	ch, ok := d.channels[channel]
	if !ok {
		return ErrUnknownChannel
	}

	return ch.dispatch(ctx, destination, code)
}

type emailDispatcher struct {
	sender   emailProvider.Sender
	template string
	ttl      time.Duration
}

type verificationEmailInput struct {
	Code           string
	ExpiresMinutes int
}

func (d *emailDispatcher) dispatch(_ context.Context, destination string, code string) error {
	sendInput := emailProvider.SendEmailInput{
		Subject: "Your verification code",
		To:      destination,
		Text:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(d.ttl.Minutes())),
	}

	templateInput := verificationEmailInput{Code: code, ExpiresMinutes: int(d.ttl.Minutes())}
	if err := sendInput.GenerateBodyFromHTML(d.template, templateInput); err != nil {
		logger.Error("generate verification email failed", zap.Error(err))
		return &DispatchError{Channel: domain.ChannelEmail, Message: "could not prepare the verification email, try again later"}
	}

	if err := d.sender.Send(sendInput); err != nil {
		logger.Error("verification email send failed", zap.Error(err), zap.String("email", destination))
		return &DispatchError{Channel: domain.ChannelEmail, Message: "could not deliver the verification email, check the address and try again"}
	}

	return nil
}

type messagingDispatcher struct {
	sender sms.Sender
	ttl    time.Duration
}

func (d *messagingDispatcher) dispatch(ctx context.Context, destination string, code string) error {
	text := fmt.Sprintf("%s is your verification code. Valid for %d minutes.", code, int(d.ttl.Minutes()))

	if err := d.sender.SendDirect(ctx, destination, text); err != nil {
		logger.Error("verification sms send failed", zap.Error(err), zap.String("phone", destination))
		return &DispatchError{Channel: domain.ChannelMessaging, Message: "could not deliver the verification message, check the number and try again"}
	}

	return nil
}
