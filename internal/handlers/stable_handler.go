package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/middleware"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
	"github.com/BruksfildServices01/stable-scheduler/internal/timezone"
)

type StableHandler struct {
	db *gorm.DB
}

func NewStableHandler(db *gorm.DB) *StableHandler {
	return &StableHandler{db: db}
}

type UpdateStableRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

func (h *StableHandler) GetMeStable(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	var stable models.Stable
	if err := h.db.First(&stable, stableID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "stable_not_found", "Hípica não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_stable", "Erro ao buscar dados da hípica.")
		return
	}

	c.JSON(http.StatusOK, stable)
}

func (h *StableHandler) UpdateMeStable(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	var stable models.Stable
	if err := h.db.First(&stable, stableID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "stable_not_found", "Hípica não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_stable", "Erro ao buscar dados da hípica.")
		return
	}

	var req UpdateStableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		stable.Name = *req.Name
	}
	if req.Phone != nil {
		stable.Phone = *req.Phone
	}
	if req.Address != nil {
		stable.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		stable.Timezone = *req.Timezone
	}

	if err := h.db.Save(&stable).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stable", "Erro ao salvar as configurações da hípica.")
		return
	}

	c.JSON(http.StatusOK, stable)
}
