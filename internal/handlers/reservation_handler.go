package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/stable-scheduler/internal/dto"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/stable-scheduler/internal/middleware"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
	ucReservation "github.com/BruksfildServices01/stable-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	db *gorm.DB

	checkUC    *ucReservation.CheckConflicts
	suggestUC  *ucReservation.SuggestSlots
	createUC   *ucReservation.CreateReservation
	updateUC   *ucReservation.UpdateReservation
	cancelUC   *ucReservation.CancelReservation
	reviewUC   *ucReservation.ReviewReservation
	completeUC *ucReservation.CompleteReservation
	byDateUC   *ucReservation.ListReservationsByDate
	byMonthUC  *ucReservation.ListReservationsByMonth
	scheduleUC *ucReservation.GetDaySchedule
}

func NewReservationHandler(
	db *gorm.DB,
	checkUC *ucReservation.CheckConflicts,
	suggestUC *ucReservation.SuggestSlots,
	createUC *ucReservation.CreateReservation,
	updateUC *ucReservation.UpdateReservation,
	cancelUC *ucReservation.CancelReservation,
	reviewUC *ucReservation.ReviewReservation,
	completeUC *ucReservation.CompleteReservation,
	byDateUC *ucReservation.ListReservationsByDate,
	byMonthUC *ucReservation.ListReservationsByMonth,
	scheduleUC *ucReservation.GetDaySchedule,
) *ReservationHandler {
	return &ReservationHandler{
		db:         db,
		checkUC:    checkUC,
		suggestUC:  suggestUC,
		createUC:   createUC,
		updateUC:   updateUC,
		cancelUC:   cancelUC,
		reviewUC:   reviewUC,
		completeUC: completeUC,
		byDateUC:   byDateUC,
		byMonthUC:  byMonthUC,
		scheduleUC: scheduleUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ReservationTimeRequest struct {
	FacilityID uint   `json:"facility_id" binding:"required"`
	Date       string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"` // HH:mm
	EndTime    string `json:"end_time" binding:"required"`   // HH:mm

	HorseIDs []uint `json:"horse_ids"`
	// campo legado dos clientes antigos: um cavalo só
	HorseID *uint `json:"horse_id"`

	ExternalHorses int    `json:"external_horses"`
	Notes          string `json:"notes"`
}

type CheckConflictsRequest struct {
	ReservationTimeRequest
	ExcludeReservationID uint `json:"exclude_reservation_id"`
}

// horseIDs normaliza "prefere array, cai no campo legado"
func (r *ReservationTimeRequest) horseIDs() []uint {
	if len(r.HorseIDs) > 0 {
		return r.HorseIDs
	}
	if r.HorseID != nil {
		return []uint{*r.HorseID}
	}
	return nil
}

// ======================================================
// HELPERS
// ======================================================

func (h *ReservationHandler) loadStable(c *gin.Context, stableID uint) (*models.Stable, bool) {
	var stable models.Stable
	if err := h.db.First(&stable, stableID).Error; err != nil {
		httperr.Internal(c, "stable_not_found", "Hípica não encontrada.")
		return nil, false
	}
	return &stable, true
}

func (h *ReservationHandler) parseWindow(
	c *gin.Context,
	stable *models.Stable,
	req *ReservationTimeRequest,
) (time.Time, time.Time, bool) {

	start, err := parseDateTimeInStable(stable, req.Date, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return time.Time{}, time.Time{}, false
	}

	end, err := parseDateTimeInStable(stable, req.Date, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// writeBusiness traduz códigos de negócio para status HTTP
func writeBusiness(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch be.Code {
	case "capacity_exceeded":
		httperr.Conflict(c, be.Code, "Sem capacidade para o horário pedido.")
	case "day_closed", "outside_availability", "facility_unavailable":
		httperr.Unprocessable(c, be.Code, "Instalação indisponível nesse horário.")
	case "facility_not_found", "reservation_not_found", "horse_not_found":
		httperr.NotFound(c, be.Code, "Registro não encontrado.")
	case "not_allowed":
		httperr.Forbidden(c, be.Code, "Sem permissão para essa operação.")
	default:
		// invalid_window, invalid_horse_count, too_soon, invalid_state...
		httperr.BadRequest(c, be.Code, "Requisição inválida.")
	}
}

// ======================================================
// CHECK CONFLICTS (pré-validação dos formulários)
// ======================================================

func (h *ReservationHandler) CheckConflicts(c *gin.Context) {
	stableID := c.MustGet(middleware.ContextStableID).(uint)

	stable, ok := h.loadStable(c, stableID)
	if !ok {
		return
	}

	var req CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, end, ok := h.parseWindow(c, stable, &req.ReservationTimeRequest)
	if !ok {
		return
	}

	out, err := h.checkUC.Execute(c.Request.Context(), ucReservation.CheckConflictsInput{
		StableID:             stableID,
		FacilityID:           req.FacilityID,
		Start:                start,
		End:                  end,
		HorseIDs:             req.horseIDs(),
		ExternalHorses:       req.ExternalHorses,
		ExcludeReservationID: req.ExcludeReservationID,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// SUGGESTIONS
// ======================================================

func (h *ReservationHandler) SuggestSlots(c *gin.Context) {
	stableID := c.MustGet(middleware.ContextStableID).(uint)

	stable, ok := h.loadStable(c, stableID)
	if !ok {
		return
	}

	facilityID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_facility_id", "Instalação inválida.")
		return
	}

	dateStr := c.Query("date")
	durationStr := c.DefaultQuery("duration", "60")
	fromStr := c.Query("from") // "HH:mm" da janela rejeitada

	date, err := parseDateInStable(stable, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
		return
	}

	requestedStart := date
	if fromStr != "" {
		if t, err := parseDateTimeInStable(stable, dateStr, fromStr); err == nil {
			requestedStart = t
		}
	}

	horseIDs := parseUintList(c.Query("horse_ids"))
	external, _ := strconv.Atoi(c.DefaultQuery("external_horses", "0"))

	slots, err := h.suggestUC.Execute(c.Request.Context(), ucReservation.SuggestSlotsInput{
		StableID:        stableID,
		FacilityID:      uint(facilityID64),
		Date:            date,
		DurationMinutes: duration,
		HorseIDs:        horseIDs,
		ExternalHorses:  external,
		RequestedStart:  requestedStart,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	out := make([]dto.SuggestedSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.SuggestedSlotDTO{
			StartTime:         s.Start.Format(time.RFC3339),
			EndTime:           s.End.Format(time.RFC3339),
			RemainingCapacity: s.RemainingCapacity,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// DAY SCHEDULE
// ======================================================

func (h *ReservationHandler) DaySchedule(c *gin.Context) {
	stableID := c.MustGet(middleware.ContextStableID).(uint)

	stable, ok := h.loadStable(c, stableID)
	if !ok {
		return
	}

	facilityID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_facility_id", "Instalação inválida.")
		return
	}

	date, err := parseDateInStable(stable, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.scheduleUC.Execute(c.Request.Context(), stableID, uint(facilityID64), date)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	stableID := c.MustGet(middleware.ContextStableID).(uint)

	stable, ok := h.loadStable(c, stableID)
	if !ok {
		return
	}

	var req ReservationTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, end, ok := h.parseWindow(c, stable, &req)
	if !ok {
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		StableID:       stableID,
		UserID:         userID,
		FacilityID:     req.FacilityID,
		Start:          start,
		End:            end,
		HorseIDs:       req.horseIDs(),
		ExternalHorses: req.ExternalHorses,
		Notes:          req.Notes,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// UPDATE (revalida tudo, excluindo a própria reserva)
// ======================================================

func (h *ReservationHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	stableID := c.MustGet(middleware.ContextStableID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	stable, ok := h.loadStable(c, stableID)
	if !ok {
		return
	}

	reservationID, ok := h.paramID(c)
	if !ok {
		return
	}

	var req ReservationTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, end, ok := h.parseWindow(c, stable, &req)
	if !ok {
		return
	}

	res, err := h.updateUC.Execute(c.Request.Context(), ucReservation.UpdateReservationInput{
		StableID:       stableID,
		UserID:         userID,
		UserRole:       role,
		ReservationID:  reservationID,
		Start:          start,
		End:            end,
		HorseIDs:       req.horseIDs(),
		ExternalHorses: req.ExternalHorses,
		Notes:          req.Notes,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// LISTS
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	stableID := c.MustGet(middleware.ContextStableID).(uint)

	stable, ok := h.loadStable(c, stableID)
	if !ok {
		return
	}

	date, err := parseDateInStable(stable, c.DefaultQuery("date", time.Now().Format("2006-01-02")))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.byDateUC.Execute(c.Request.Context(), stableID, date)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *ReservationHandler) ListByMonth(c *gin.Context) {
	stableID := c.MustGet(middleware.ContextStableID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.byMonthUC.Execute(c.Request.Context(), stableID, year, month)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	stableID := c.MustGet(middleware.ContextStableID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	reservationID, ok := h.paramID(c)
	if !ok {
		return
	}

	res, err := h.cancelUC.Execute(c.Request.Context(), stableID, userID, role, reservationID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	stableID := c.MustGet(middleware.ContextStableID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	reservationID, ok := h.paramID(c)
	if !ok {
		return
	}

	res, err := h.reviewUC.Confirm(c.Request.Context(), stableID, userID, role, reservationID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Reject(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	stableID := c.MustGet(middleware.ContextStableID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	reservationID, ok := h.paramID(c)
	if !ok {
		return
	}

	res, err := h.reviewUC.Reject(c.Request.Context(), stableID, userID, role, reservationID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	stableID := c.MustGet(middleware.ContextStableID).(uint)

	reservationID, ok := h.paramID(c)
	if !ok {
		return
	}

	res, err := h.completeUC.Execute(c.Request.Context(), stableID, userID, reservationID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	stableID := c.MustGet(middleware.ContextStableID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	reservationID, ok := h.paramID(c)
	if !ok {
		return
	}

	res, err := h.completeUC.MarkNoShow(c.Request.Context(), stableID, userID, role, reservationID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, res)
}

// --------- Helpers ---------

func (h *ReservationHandler) paramID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id64), true
}

// parseUintList aceita "1,2,3" em query string
func parseUintList(s string) []uint {
	if s == "" {
		return nil
	}

	var out []uint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.ParseUint(part, 10, 64); err == nil {
			out = append(out, uint(n))
		}
	}
	return out
}
