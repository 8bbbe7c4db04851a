package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/stable-scheduler/internal/cache"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
	ucReservation "github.com/BruksfildServices01/stable-scheduler/internal/usecase/reservation"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db         *gorm.DB
	cache      *cache.Cache
	scheduleUC *ucReservation.GetDaySchedule
}

func NewPublicHandler(db *gorm.DB, cache *cache.Cache, scheduleUC *ucReservation.GetDaySchedule) *PublicHandler {
	return &PublicHandler{
		db:         db,
		cache:      cache,
		scheduleUC: scheduleUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicFacilityDTO struct {
	ID                      uint   `json:"id"`
	Name                    string `json:"name"`
	Type                    string `json:"type"`
	MaxHorsesPerReservation int    `json:"max_horses_per_reservation"`
	MinSlotMinutes          int    `json:"min_slot_minutes"`
}

////////////////////////////////////////////////////////
// FACILITIES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListFacilities(c *gin.Context) {
	slug := c.Param("slug")

	var stable models.Stable
	if err := h.db.Where("slug = ?", slug).First(&stable).Error; err != nil {
		httperr.NotFound(c, "stable_not_found", "Hípica não encontrada.")
		return
	}

	var facilities []models.Facility
	if err := h.db.
		Where("stable_id = ? AND status = ?", stable.ID, models.FacilityStatusActive).
		Order("name ASC").
		Find(&facilities).Error; err != nil {
		httperr.Internal(c, "list_failed", "Erro ao listar instalações.")
		return
	}

	out := make([]PublicFacilityDTO, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, PublicFacilityDTO{
			ID:                      f.ID,
			Name:                    f.Name,
			Type:                    f.Type,
			MaxHorsesPerReservation: f.MaxHorsesPerReservation,
			MinSlotMinutes:          f.MinSlotMinutes,
		})
	}

	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY (grade do dia, cacheada)
////////////////////////////////////////////////////////

func (h *PublicHandler) DayAvailability(c *gin.Context) {
	slug := c.Param("slug")

	var stable models.Stable
	if err := h.db.Where("slug = ?", slug).First(&stable).Error; err != nil {
		httperr.NotFound(c, "stable_not_found", "Hípica não encontrada.")
		return
	}

	facilityID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_facility_id", "Instalação inválida.")
		return
	}
	facilityID := uint(facilityID64)

	dateStr := c.Query("date")
	date, err := parseDateInStable(&stable, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	body, err := h.cache.GetOrCompute(c.Request.Context(), facilityID, dateStr, func() (any, error) {
		return h.scheduleUC.Execute(c.Request.Context(), stable.ID, facilityID, date)
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
