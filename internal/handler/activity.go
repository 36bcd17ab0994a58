package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskify/internal/models"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxActivityPage bounds page so the offset cannot overflow.
const maxActivityPage = 10000

// ActivityHandler lists the caller's recorded mutating requests.
type ActivityHandler struct {
	DB              *gorm.DB
	DefaultPageSize int
}

func NewActivityHandler(db *gorm.DB, pageSize int) *ActivityHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ActivityHandler{DB: db, DefaultPageSize: pageSize}
}

type activityPage struct {
	Items    []models.ActivityLog `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// ListActivity supports page / page_size, start / end (YYYY-MM-DD, end
// inclusive) and q, a substring of the request path.
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		page = 1
	}
	if page > maxActivityPage || errors.Is(err, strconv.ErrRange) {
		badRequest(c, fmt.Sprintf("page must be at most %d", maxActivityPage))
		return
	}
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.DefaultPageSize)))
	if size <= 0 || size > 100 {
		size = h.DefaultPageSize
	}
	offset := (page - 1) * size

	base := h.DB.WithContext(c.Request.Context()).
		Model(&models.ActivityLog{}).
		Where("user_id = ?", id.ID)

	if s := c.Query("start"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			badRequest(c, "start must be YYYY-MM-DD")
			return
		}
		base = base.Where("created_at >= ?", start)
	}
	if s := c.Query("end"); s != "" {
		end, err := time.Parse("2006-01-02", s)
		if err != nil {
			badRequest(c, "end must be YYYY-MM-DD")
			return
		}
		base = base.Where("created_at < ?", end.Add(24*time.Hour))
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		base = base.Where("path LIKE ?", "%"+q+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		serverError(c, err, "Failed to fetch activity")
		return
	}

	items := []models.ActivityLog{}
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&items).Error; err != nil {
		serverError(c, err, "Failed to fetch activity")
		return
	}

	util.JSON(c, http.StatusOK, activityPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: size,
	})
}
