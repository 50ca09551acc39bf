package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sharepool/backend/internal/config"
	"github.com/sharepool/backend/internal/domain"
	"github.com/sharepool/backend/internal/service"
	"github.com/sharepool/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type stubOTPService struct {
	issueErr    error
	validateErr error

	lastDestination string
	lastChannel     domain.Channel
	lastCode        string
}

func (s *stubOTPService) Issue(_ context.Context, destination string, channel domain.Channel) error {
	s.lastDestination = destination
	s.lastChannel = channel
	return s.issueErr
}

func (s *stubOTPService) IssueTx(_ context.Context, _ *sqlx.Tx, destination string, channel domain.Channel) error {
	s.lastDestination = destination
	s.lastChannel = channel
	return s.issueErr
}

func (s *stubOTPService) Validate(_ context.Context, destination string, channel domain.Channel, code string) error {
	s.lastDestination = destination
	s.lastChannel = channel
	s.lastCode = code
	return s.validateErr
}

func newTestRouter(otp *stubOTPService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	router := gin.New()
	handler := NewHandler(&service.Services{OTP: otp}, &config.Config{})
	handler.Init(router.Group("/api"))

	return router
}

func doJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestOTPIssue(t *testing.T) {
	stub := &stubOTPService{}
	router := newTestRouter(stub)

	rec := doJSON(t, router, "/api/v1/otp/issue", gin.H{"destination": " User@X.com ", "channel": "EMAIL"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success": true}`, rec.Body.String())
	// The handler normalizes the email before it reaches the engine.
	require.Equal(t, "user@x.com", stub.lastDestination)
	require.Equal(t, domain.ChannelEmail, stub.lastChannel)
}

func TestOTPIssueCooldown(t *testing.T) {
	stub := &stubOTPService{issueErr: &service.CooldownError{RetryAfter: 42 * time.Second}}
	router := newTestRouter(stub)

	rec := doJSON(t, router, "/api/v1/otp/issue", gin.H{"destination": "user@x.com", "channel": "EMAIL"})

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp cooldownResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, ErrorCode(OTPCooldownCode), resp.ErrorCode)
	require.Equal(t, 42, resp.RetryAfterSeconds)
}

func TestOTPIssueDispatchFailure(t *testing.T) {
	stub := &stubOTPService{issueErr: &service.DispatchError{
		Channel: domain.ChannelMessaging,
		Message: "could not deliver the verification message, check the number and try again",
	}}
	router := newTestRouter(stub)

	rec := doJSON(t, router, "/api/v1/otp/issue", gin.H{"destination": "+15551234567", "channel": "MESSAGING"})

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorStruct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, ErrorCode(OTPDispatchFailedCode), resp.ErrorCode)
}

func TestOTPIssueInvalidChannel(t *testing.T) {
	router := newTestRouter(&stubOTPService{})

	rec := doJSON(t, router, "/api/v1/otp/issue", gin.H{"destination": "user@x.com", "channel": "FAX"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorStruct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, ErrorCode(OTPInvalidChannelCode), resp.ErrorCode)
}

func TestOTPIssueInvalidDestination(t *testing.T) {
	router := newTestRouter(&stubOTPService{})

	tests := []struct {
		name        string
		destination string
		channel     string
	}{
		{name: "bad_email", destination: "not-an-email", channel: "EMAIL"},
		{name: "bad_phone", destination: "555-1234", channel: "MESSAGING"},
		{name: "email_on_messaging", destination: "user@x.com", channel: "MESSAGING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, "/api/v1/otp/issue", gin.H{"destination": tt.destination, "channel": tt.channel})

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorStruct
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, ErrorCode(OTPInvalidDestinationCode), resp.ErrorCode)
		})
	}
}

func TestOTPValidate(t *testing.T) {
	stub := &stubOTPService{}
	router := newTestRouter(stub)

	rec := doJSON(t, router, "/api/v1/otp/validate", gin.H{"destination": "user@x.com", "channel": "EMAIL", "code": "123456"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success": true}`, rec.Body.String())
	require.Equal(t, "123456", stub.lastCode)
}

func TestOTPValidateIncorrectCode(t *testing.T) {
	stub := &stubOTPService{validateErr: &service.IncorrectCodeError{AttemptsLeft: 0}}
	router := newTestRouter(stub)

	rec := doJSON(t, router, "/api/v1/otp/validate", gin.H{"destination": "user@x.com", "channel": "EMAIL", "code": "123456"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp incorrectCodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, ErrorCode(OTPIncorrectCodeCode), resp.ErrorCode)
	require.Equal(t, 0, resp.AttemptsLeft)
	require.True(t, resp.LastAttempt)
}

func TestOTPValidateInvalidOrExpired(t *testing.T) {
	stub := &stubOTPService{validateErr: service.ErrCodeInvalidOrExpired}
	router := newTestRouter(stub)

	rec := doJSON(t, router, "/api/v1/otp/validate", gin.H{"destination": "user@x.com", "channel": "EMAIL", "code": "123456"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorStruct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, ErrorCode(OTPInvalidOrExpiredCode), resp.ErrorCode)
}

func TestOTPValidateLocked(t *testing.T) {
	stub := &stubOTPService{validateErr: service.ErrCodeLocked}
	router := newTestRouter(stub)

	rec := doJSON(t, router, "/api/v1/otp/validate", gin.H{"destination": "user@x.com", "channel": "EMAIL", "code": "123456"})

	require.Equal(t, http.StatusLocked, rec.Code)

	var resp ErrorStruct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, ErrorCode(OTPLockedCode), resp.ErrorCode)
}

func TestOTPValidateBadCodeFormat(t *testing.T) {
	router := newTestRouter(&stubOTPService{})

	for _, code := range []string{"", "12345", "1234567", "12345a"} {
		rec := doJSON(t, router, "/api/v1/otp/validate", gin.H{"destination": "user@x.com", "channel": "EMAIL", "code": code})
		require.Equal(t, http.StatusBadRequest, rec.Code, code)
	}
}
