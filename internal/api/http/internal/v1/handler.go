package v1

import (
	"github.com/sharepool/backend/internal/config"
	"github.com/sharepool/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @title OTP Verification API
// @version 1.0
// @description Issues and validates one-time verification codes over email and messaging.

// @BasePath /api/v1

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandler(services *service.Services, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initOTPRoutes(v1)
}
