package v1

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/sharepool/backend/internal/domain"
	"github.com/sharepool/backend/internal/service"
	"github.com/sharepool/backend/pkg/email"
	"github.com/sharepool/backend/pkg/logger"
	"github.com/sharepool/backend/pkg/validator"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initOTPRoutes(api *gin.RouterGroup) {
	otp := api.Group("/otp")

	otp.POST("/issue", h.otpIssue)
	otp.POST("/validate", h.otpValidate)
}

type otpIssueRequest struct {
	Destination string `json:"destination" binding:"required"`
	Channel     string `json:"channel" binding:"required"`
} // @name OTPIssueRequest

type otpValidateRequest struct {
	Destination string `json:"destination" binding:"required"`
	Channel     string `json:"channel" binding:"required"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
} // @name OTPValidateRequest

// normalizeDestination brings the destination to the canonical form for the
// channel and reports whether it is deliverable at all.
func normalizeDestination(channel domain.Channel, destination string) (string, bool) {
	switch channel {
	case domain.ChannelEmail:
		normalized := strings.ToLower(strings.TrimSpace(destination))
		return normalized, email.IsEmailValid(normalized)
	case domain.ChannelMessaging:
		normalized := strings.TrimSpace(destination)
		return normalized, validator.IsE164(normalized)
	}

	return "", false
}

// @Summary Issue verification code
// @Tags OTP
// @Description Sends a one-time verification code to the destination over the given channel
// @ModuleID otpIssue
// @Accept  json
// @Produce  json
// @Param input body OTPIssueRequest true "destination and channel"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorStruct
// @Failure 429 {object} CooldownResponse
// @Failure 502 {object} ErrorStruct
// @Router /otp/issue [post]
func (h *Handler) otpIssue(c *gin.Context) {
	var req otpIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	channel, err := domain.ParseChannel(req.Channel)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, OTPInvalidChannelCode)
		return
	}

	destination, ok := normalizeDestination(channel, req.Destination)
	if !ok {
		errorResponse(c, http.StatusBadRequest, OTPInvalidDestinationCode)
		return
	}

	err = h.services.OTP.Issue(c.Request.Context(), destination, channel)

	var cooldownErr *service.CooldownError
	var dispatchErr *service.DispatchError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, statusResponse{Success: true})
	case errors.As(err, &cooldownErr):
		c.JSON(http.StatusTooManyRequests, cooldownResponse{
			ErrorStruct:       *getErrorStruct(OTPCooldownCode),
			RetryAfterSeconds: int(math.Ceil(cooldownErr.RetryAfter.Seconds())),
		})
	case errors.As(err, &dispatchErr):
		c.JSON(http.StatusBadGateway, ErrorStruct{
			ErrorCode:    OTPDispatchFailedCode,
			ErrorMessage: ErrorMessage(dispatchErr.Message),
		})
	default:
		logger.Error("otp issue failed", zap.Error(err), zap.String("channel", string(channel)))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
	}
}

// @Summary Validate verification code
// @Tags OTP
// @Description Checks a submitted code against the latest one issued for the destination and channel
// @ModuleID otpValidate
// @Accept  json
// @Produce  json
// @Param input body OTPValidateRequest true "destination, channel and code"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} IncorrectCodeResponse
// @Failure 423 {object} ErrorStruct
// @Router /otp/validate [post]
func (h *Handler) otpValidate(c *gin.Context) {
	var req otpValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	channel, err := domain.ParseChannel(req.Channel)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, OTPInvalidChannelCode)
		return
	}

	destination, ok := normalizeDestination(channel, req.Destination)
	if !ok {
		errorResponse(c, http.StatusBadRequest, OTPInvalidDestinationCode)
		return
	}

	err = h.services.OTP.Validate(c.Request.Context(), destination, channel, req.Code)

	var incorrectErr *service.IncorrectCodeError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, statusResponse{Success: true})
	case errors.As(err, &incorrectErr):
		c.JSON(http.StatusBadRequest, incorrectCodeResponse{
			ErrorStruct:  *getErrorStruct(OTPIncorrectCodeCode),
			AttemptsLeft: incorrectErr.AttemptsLeft,
			LastAttempt:  incorrectErr.AttemptsLeft == 0,
		})
	case errors.Is(err, service.ErrCodeInvalidOrExpired):
		errorResponse(c, http.StatusBadRequest, OTPInvalidOrExpiredCode)
	case errors.Is(err, service.ErrCodeLocked):
		errorResponse(c, http.StatusLocked, OTPLockedCode)
	default:
		logger.Error("otp validate failed", zap.Error(err), zap.String("channel", string(channel)))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
	}
}
