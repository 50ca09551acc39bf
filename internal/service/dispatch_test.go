package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sharepool/backend/internal/config"
	"github.com/sharepool/backend/internal/domain"
	emailProvider "github.com/sharepool/backend/pkg/email"
	mock_email "github.com/sharepool/backend/pkg/email/mock"
	mock_sms "github.com/sharepool/backend/pkg/sms/mock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeVerificationTemplate(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "verification_email.html")
	content := `<p>Your code is {{.Code}}, valid for {{.ExpiresMinutes}} minutes.</p>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newTestDispatcher(emailSender emailProvider.Sender, smsSender *mock_sms.SMSSender, template string) Dispatcher {
	return NewDispatcher(emailSender, smsSender,
		config.EmailConfig{Templates: config.EmailTemplates{Verification: template}},
		config.OTPConfig{CodeLength: 6, CodeTTL: 10 * time.Minute, Cooldown: time.Minute, MaxAttempts: 5},
	)
}

func TestDispatchEmail(t *testing.T) {
	emailSender := new(mock_email.EmailSender)
	emailSender.On("Send", mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.To == "user@x.com" &&
			inp.Subject != "" &&
			strings.Contains(inp.Body, "123456") &&
			strings.Contains(inp.Body, "10 minutes") &&
			strings.Contains(inp.Text, "123456")
	})).Return(nil)

	d := newTestDispatcher(emailSender, new(mock_sms.SMSSender), writeVerificationTemplate(t))

	err := d.Dispatch(context.Background(), domain.ChannelEmail, "user@x.com", "123456")
	require.NoError(t, err)
	emailSender.AssertExpectations(t)
}

func TestDispatchEmailTransportFailure(t *testing.T) {
	emailSender := new(mock_email.EmailSender)
	emailSender.On("Send", mock.Anything).Return(errors.New("smtp: 550 mailbox unavailable for user@x.com"))

	d := newTestDispatcher(emailSender, new(mock_sms.SMSSender), writeVerificationTemplate(t))

	err := d.Dispatch(context.Background(), domain.ChannelEmail, "user@x.com", "123456")

	var dispatchErr *DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	require.Equal(t, domain.ChannelEmail, dispatchErr.Channel)
	// Transport detail and the code itself must not leak to the caller.
	require.NotContains(t, dispatchErr.Error(), "123456")
	require.NotContains(t, dispatchErr.Error(), "smtp")
}

func TestDispatchEmailBadTemplate(t *testing.T) {
	emailSender := new(mock_email.EmailSender)

	d := newTestDispatcher(emailSender, new(mock_sms.SMSSender), filepath.Join(t.TempDir(), "missing.html"))

	err := d.Dispatch(context.Background(), domain.ChannelEmail, "user@x.com", "123456")

	var dispatchErr *DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	emailSender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestDispatchMessaging(t *testing.T) {
	smsSender := new(mock_sms.SMSSender)
	smsSender.On("SendDirect", mock.Anything, "+15551234567", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "123456") && strings.Contains(text, "10 minutes")
	})).Return(nil)

	d := newTestDispatcher(new(mock_email.EmailSender), smsSender, writeVerificationTemplate(t))

	err := d.Dispatch(context.Background(), domain.ChannelMessaging, "+15551234567", "123456")
	require.NoError(t, err)
	smsSender.AssertExpectations(t)
}

func TestDispatchMessagingTransportFailure(t *testing.T) {
	smsSender := new(mock_sms.SMSSender)
	smsSender.On("SendDirect", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gateway returned 503"))

	d := newTestDispatcher(new(mock_email.EmailSender), smsSender, writeVerificationTemplate(t))

	err := d.Dispatch(context.Background(), domain.ChannelMessaging, "+15551234567", "123456")

	var dispatchErr *DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	require.Equal(t, domain.ChannelMessaging, dispatchErr.Channel)
	require.NotContains(t, dispatchErr.Error(), "123456")
	require.NotContains(t, dispatchErr.Error(), "503")
}

func TestDispatchUnknownChannel(t *testing.T) {
	d := newTestDispatcher(new(mock_email.EmailSender), new(mock_sms.SMSSender), writeVerificationTemplate(t))

	err := d.Dispatch(context.Background(), domain.Channel("CARRIER_PIGEON"), "user@x.com", "123456")
	require.ErrorIs(t, err, ErrUnknownChannel)
}
