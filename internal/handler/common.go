package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"taskify/internal/auth"
	"taskify/internal/middleware"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// currentIdentity fetches the caller or answers 401.
func currentIdentity(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentication required")
		return auth.Identity{}, false
	}
	return id, true
}

// pathID parses a numeric path parameter. A malformed id is reported the
// same way as a missing resource.
func pathID(c *gin.Context, name, what string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		notFound(c, what)
		return 0, false
	}
	return uint(v), true
}

func notFound(c *gin.Context, what string) {
	util.Error(c, http.StatusNotFound, util.CodeNotFound, what+" not found or access denied")
}

func badRequest(c *gin.Context, msg string) {
	util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
}

// serverError logs err and answers with a generic message.
func serverError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	middleware.Logger(c).Error(msg, "err", err)
	util.Error(c, http.StatusInternalServerError, util.CodeServerErr, msg)
}

// ownershipError maps an Authorizer loader error to a response.
func ownershipError(c *gin.Context, err error, what string) {
	if errors.Is(err, auth.ErrNotFound) {
		notFound(c, what)
		return
	}
	serverError(c, err, fmt.Sprintf("Failed to load %s", what))
}

// nextPosition returns max(position)+1 among rows of model where column = parentID.
func nextPosition(tx *gorm.DB, model any, column string, parentID uint) (int, error) {
	var maxPos int64
	err := tx.Model(model).
		Where(column+" = ?", parentID).
		Select("COALESCE(MAX(position), 0)").
		Row().Scan(&maxPos)
	if err != nil {
		return 0, fmt.Errorf("query max position: %w", err)
	}
	return int(maxPos) + 1, nil
}
