package handler

import (
	"net/http"

	"taskify/internal/database"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InitHandler seeds default labels and the sample account on demand.
type InitHandler struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewInitHandler(db *gorm.DB, bcryptCost int) *InitHandler {
	return &InitHandler{DB: db, BcryptCost: bcryptCost}
}

type initResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	database.SeedResult
}

func (h *InitHandler) Init(c *gin.Context) {
	res, err := database.Seed(c.Request.Context(), h.DB, h.BcryptCost)
	if err != nil {
		serverError(c, err, "Failed to initialize database")
		return
	}
	util.JSON(c, http.StatusOK, initResp{
		Success:    true,
		Message:    "Database initialized successfully",
		SeedResult: res,
	})
}

// Health pings the database.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			serverError(c, err, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
