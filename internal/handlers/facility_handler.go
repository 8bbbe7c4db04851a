package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/stable-scheduler/internal/cache"
	"github.com/BruksfildServices01/stable-scheduler/internal/middleware"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

type FacilityHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewFacilityHandler(db *gorm.DB, cache *cache.Cache) *FacilityHandler {
	return &FacilityHandler{db: db, cache: cache}
}

// --------- Requests ---------

type CreateFacilityRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`

	MaxHorsesPerReservation  int `json:"max_horses_per_reservation" binding:"required,min=1"`
	MinSlotMinutes           int `json:"min_slot_minutes" binding:"required,min=5"`
	MaxMinutesPerReservation int `json:"max_minutes_per_reservation"`

	PlanningOpensDays int `json:"planning_opens_days"`
	MinAdvanceMinutes int `json:"min_advance_minutes"`

	EnforceSlotMultiple *bool `json:"enforce_slot_multiple"`
	RequiresApproval    bool  `json:"requires_approval"`
}

type UpdateFacilityRequest struct {
	Name   *string `json:"name,omitempty"`
	Type   *string `json:"type,omitempty"`
	Status *string `json:"status,omitempty"`

	MaxHorsesPerReservation  *int `json:"max_horses_per_reservation,omitempty"`
	MinSlotMinutes           *int `json:"min_slot_minutes,omitempty"`
	MaxMinutesPerReservation *int `json:"max_minutes_per_reservation,omitempty"`

	PlanningOpensDays *int `json:"planning_opens_days,omitempty"`
	MinAdvanceMinutes *int `json:"min_advance_minutes,omitempty"`

	EnforceSlotMultiple *bool `json:"enforce_slot_multiple,omitempty"`
	RequiresApproval    *bool `json:"requires_approval,omitempty"`
}

type TimeBlockConfig struct {
	// -1 = default para todos os dias; 0 (domingo) a 6 (sábado) = override
	Weekday  int    `json:"weekday" binding:"min=-1,max=6"`
	FromTime string `json:"from_time" binding:"required"`
	ToTime   string `json:"to_time" binding:"required"`
}

type TimeBlocksUpdateRequest struct {
	Blocks []TimeBlockConfig `json:"blocks" binding:"required"`
}

type ExceptionConfig struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Closed   bool   `json:"closed"`
	FromTime string `json:"from_time"`
	ToTime   string `json:"to_time"`
	Reason   string `json:"reason"`
}

type ExceptionsUpdateRequest struct {
	Exceptions []ExceptionConfig `json:"exceptions" binding:"required"`
}

// --------- Handlers ---------

func (h *FacilityHandler) List(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	ftype := strings.ToLower(strings.TrimSpace(c.Query("type")))
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	q := h.db.Where("stable_id = ?", stableID)

	if ftype != "" {
		q = q.Where("LOWER(type) = ?", ftype)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var facilities []models.Facility
	if err := q.
		Preload("TimeBlocks").
		Preload("Exceptions").
		Order("id ASC").
		Find(&facilities).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_facilities"})
		return
	}

	c.JSON(http.StatusOK, facilities)
}

func (h *FacilityHandler) Create(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	role := c.MustGet(middleware.ContextUserRole).(string)
	if !models.CanManage(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_allowed"})
		return
	}

	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	enforce := true
	if req.EnforceSlotMultiple != nil {
		enforce = *req.EnforceSlotMultiple
	}

	facility := models.Facility{
		StableID:                 stableID,
		Name:                     req.Name,
		Type:                     strings.ToLower(req.Type),
		Status:                   models.FacilityStatusActive,
		MaxHorsesPerReservation:  req.MaxHorsesPerReservation,
		MinSlotMinutes:           req.MinSlotMinutes,
		MaxMinutesPerReservation: req.MaxMinutesPerReservation,
		PlanningOpensDays:        req.PlanningOpensDays,
		MinAdvanceMinutes:        req.MinAdvanceMinutes,
		EnforceSlotMultiple:      enforce,
		RequiresApproval:         req.RequiresApproval,
	}

	if err := h.db.Create(&facility).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_facility"})
		return
	}

	c.JSON(http.StatusCreated, facility)
}

func (h *FacilityHandler) Update(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	role := c.MustGet(middleware.ContextUserRole).(string)
	if !models.CanManage(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_allowed"})
		return
	}

	id := c.Param("id")

	var facility models.Facility
	if err := h.db.
		Where("id = ? AND stable_id = ?", id, stableID).
		First(&facility).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_facility"})
		return
	}

	var req UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		facility.Name = *req.Name
	}
	if req.Type != nil {
		facility.Type = strings.ToLower(*req.Type)
	}
	if req.Status != nil {
		switch *req.Status {
		case models.FacilityStatusActive,
			models.FacilityStatusInactive,
			models.FacilityStatusMaintenance:
			facility.Status = *req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
			return
		}
	}
	if req.MaxHorsesPerReservation != nil {
		if *req.MaxHorsesPerReservation < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_max_horses"})
			return
		}
		facility.MaxHorsesPerReservation = *req.MaxHorsesPerReservation
	}
	if req.MinSlotMinutes != nil {
		facility.MinSlotMinutes = *req.MinSlotMinutes
	}
	if req.MaxMinutesPerReservation != nil {
		facility.MaxMinutesPerReservation = *req.MaxMinutesPerReservation
	}
	if req.PlanningOpensDays != nil {
		facility.PlanningOpensDays = *req.PlanningOpensDays
	}
	if req.MinAdvanceMinutes != nil {
		facility.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.EnforceSlotMultiple != nil {
		facility.EnforceSlotMultiple = *req.EnforceSlotMultiple
	}
	if req.RequiresApproval != nil {
		facility.RequiresApproval = *req.RequiresApproval
	}

	if err := h.db.Save(&facility).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_facility"})
		return
	}

	h.cache.InvalidateFacility(context.Background(), facility.ID)

	c.JSON(http.StatusOK, facility)
}

// --------- Weekly hours ---------

func (h *FacilityHandler) GetTimeBlocks(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	facility, ok := h.loadFacility(c, stableID)
	if !ok {
		return
	}

	var blocks []models.FacilityTimeBlock
	if err := h.db.
		Where("facility_id = ?", facility.ID).
		Order("weekday ASC, from_time ASC").
		Find(&blocks).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_time_blocks"})
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *FacilityHandler) UpdateTimeBlocks(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	role := c.MustGet(middleware.ContextUserRole).(string)
	if !models.CanManage(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_allowed"})
		return
	}

	facility, ok := h.loadFacility(c, stableID)
	if !ok {
		return
	}

	var req TimeBlocksUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, b := range req.Blocks {
		if !validHourRange(b.FromTime, b.ToTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_block"})
			return
		}
	}

	if err := h.db.
		Where("facility_id = ?", facility.ID).
		Delete(&models.FacilityTimeBlock{}).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_time_blocks"})
		return
	}

	var toCreate []models.FacilityTimeBlock
	for _, b := range req.Blocks {
		toCreate = append(toCreate, models.FacilityTimeBlock{
			FacilityID: facility.ID,
			Weekday:    b.Weekday,
			FromTime:   b.FromTime,
			ToTime:     b.ToTime,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_time_blocks"})
			return
		}
	}

	h.cache.InvalidateFacility(context.Background(), facility.ID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Exceptions ---------

func (h *FacilityHandler) GetExceptions(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	facility, ok := h.loadFacility(c, stableID)
	if !ok {
		return
	}

	var exceptions []models.FacilityException
	if err := h.db.
		Where("facility_id = ?", facility.ID).
		Order("date ASC").
		Find(&exceptions).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_exceptions"})
		return
	}

	c.JSON(http.StatusOK, exceptions)
}

func (h *FacilityHandler) UpdateExceptions(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	role := c.MustGet(middleware.ContextUserRole).(string)
	if !models.CanManage(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_allowed"})
		return
	}

	facility, ok := h.loadFacility(c, stableID)
	if !ok {
		return
	}

	var req ExceptionsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, ex := range req.Exceptions {
		if !validDate(ex.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_exception_date"})
			return
		}
		if !ex.Closed && !validHourRange(ex.FromTime, ex.ToTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_exception_block"})
			return
		}
	}

	if err := h.db.
		Where("facility_id = ?", facility.ID).
		Delete(&models.FacilityException{}).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_exceptions"})
		return
	}

	var toCreate []models.FacilityException
	for _, ex := range req.Exceptions {
		toCreate = append(toCreate, models.FacilityException{
			FacilityID: facility.ID,
			Date:       ex.Date,
			Closed:     ex.Closed,
			FromTime:   ex.FromTime,
			ToTime:     ex.ToTime,
			Reason:     ex.Reason,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_exceptions"})
			return
		}
	}

	h.cache.InvalidateFacility(context.Background(), facility.ID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Helpers ---------

func (h *FacilityHandler) loadFacility(c *gin.Context, stableID uint) (*models.Facility, bool) {
	id := c.Param("id")

	var facility models.Facility
	if err := h.db.
		Where("id = ? AND stable_id = ?", id, stableID).
		First(&facility).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility_not_found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_facility"})
		return nil, false
	}

	return &facility, true
}
