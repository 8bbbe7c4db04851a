package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/stable-scheduler/internal/media"
	"github.com/BruksfildServices01/stable-scheduler/internal/middleware"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

// limite de upload de foto (antes do reencode webp)
const maxPhotoBytes = 8 << 20

type HorseHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewHorseHandler(db *gorm.DB, uploader *media.Uploader) *HorseHandler {
	return &HorseHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type CreateHorseRequest struct {
	Name      string `json:"name" binding:"required"`
	Breed     string `json:"breed"`
	BirthYear int    `json:"birth_year"`
	Notes     string `json:"notes"`
}

type UpdateHorseRequest struct {
	Name      *string `json:"name,omitempty"`
	Breed     *string `json:"breed,omitempty"`
	BirthYear *int    `json:"birth_year,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *HorseHandler) List(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Where("stable_id = ?", stableID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(breed) LIKE ?", like, like)
	}

	var horses []models.Horse
	if err := q.Order("name ASC").Find(&horses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_horses"})
		return
	}

	c.JSON(http.StatusOK, horses)
}

func (h *HorseHandler) Create(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	var req CreateHorseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	horse := models.Horse{
		StableID:  stableID,
		Name:      req.Name,
		Breed:     req.Breed,
		BirthYear: req.BirthYear,
		Notes:     req.Notes,
		Active:    true,
	}

	if err := h.db.Create(&horse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_horse"})
		return
	}

	c.JSON(http.StatusCreated, horse)
}

func (h *HorseHandler) Update(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	horse, ok := h.loadHorse(c, stableID)
	if !ok {
		return
	}

	var req UpdateHorseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		horse.Name = *req.Name
	}
	if req.Breed != nil {
		horse.Breed = *req.Breed
	}
	if req.BirthYear != nil {
		horse.BirthYear = *req.BirthYear
	}
	if req.Notes != nil {
		horse.Notes = *req.Notes
	}
	if req.Active != nil {
		horse.Active = *req.Active
	}

	if err := h.db.Save(horse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_horse"})
		return
	}

	c.JSON(http.StatusOK, horse)
}

func (h *HorseHandler) Delete(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	horse, ok := h.loadHorse(c, stableID)
	if !ok {
		return
	}

	// cavalo com reserva ativa não some: só pode ser desativado
	var inUse int64
	if err := h.db.
		Table("reservation_horses rh").
		Joins("JOIN facility_reservations r ON r.id = rh.facility_reservation_id").
		Where("rh.horse_id = ? AND r.status IN ?", horse.ID, []string{"pending", "confirmed"}).
		Count(&inUse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_horse"})
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "horse_has_active_reservations"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM reservation_horses WHERE horse_id = ?", horse.ID).Error; err != nil {
			return err
		}
		return tx.Delete(horse).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_horse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadPhoto recebe multipart "photo", reencoda em webp e grava no S3
func (h *HorseHandler) UploadPhoto(c *gin.Context) {
	stableIDVal, _ := c.Get(middleware.ContextStableID)
	stableID := stableIDVal.(uint)

	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media_storage_disabled"})
		return
	}

	horse, ok := h.loadHorse(c, stableID)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_photo"})
		return
	}
	if file.Size > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo_too_large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_read_photo"})
		return
	}
	defer f.Close()

	url, err := h.uploader.UploadHorsePhoto(c.Request.Context(), stableID, horse.ID, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_store_photo"})
		return
	}

	horse.PhotoURL = url
	if err := h.db.Save(horse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_horse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// --------- Helpers ---------

func (h *HorseHandler) loadHorse(c *gin.Context, stableID uint) (*models.Horse, bool) {
	id := c.Param("id")

	var horse models.Horse
	if err := h.db.
		Where("id = ? AND stable_id = ?", id, stableID).
		First(&horse).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "horse_not_found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_horse"})
		return nil, false
	}

	return &horse, true
}
