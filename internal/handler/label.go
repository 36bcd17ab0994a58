package handler

import (
	"net/http"
	"strings"

	"taskify/internal/models"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LabelHandler serves the global label catalogue.
type LabelHandler struct {
	DB *gorm.DB
}

func NewLabelHandler(db *gorm.DB) *LabelHandler {
	return &LabelHandler{DB: db}
}

type createLabelReq struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListLabels is readable without a session: labels belong to nobody.
func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels := []models.Label{}
	if err := h.DB.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&labels).Error; err != nil {
		serverError(c, err, "Failed to fetch labels")
		return
	}
	util.JSON(c, http.StatusOK, labels)
}

func (h *LabelHandler) CreateLabel(c *gin.Context) {
	if _, ok := currentIdentity(c); !ok {
		return
	}

	var req createLabelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Color = strings.TrimSpace(req.Color)
	if req.Name == "" || req.Color == "" {
		badRequest(c, "Name and color are required")
		return
	}
	if err := util.ValidateTitle(req.Name); err != nil {
		badRequest(c, "Name must be at most 255 characters long")
		return
	}
	if err := util.ValidateColor(req.Color); err != nil {
		badRequest(c, err.Error())
		return
	}

	label := models.Label{Name: req.Name, Color: req.Color}
	if err := h.DB.WithContext(c.Request.Context()).Create(&label).Error; err != nil {
		serverError(c, err, "Failed to create label")
		return
	}
	util.JSON(c, http.StatusCreated, label)
}
