package handler

import (
	"net/http"
	"strings"

	"taskify/internal/auth"
	"taskify/internal/models"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BoardHandler serves /api/boards.
type BoardHandler struct {
	DB    *gorm.DB
	Authz *auth.Authorizer
}

func NewBoardHandler(db *gorm.DB, authz *auth.Authorizer) *BoardHandler {
	return &BoardHandler{DB: db, Authz: authz}
}

type boardReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *boardReq) normalize() error {
	r.Title = strings.TrimSpace(r.Title)
	return util.ValidateTitle(r.Title)
}

// boardDetail always renders lists (and each list's cards), even when empty.
type boardDetail struct {
	models.Board
	Lists []listDetail `json:"lists"`
}

func newBoardDetail(b models.Board) boardDetail {
	d := boardDetail{Board: b, Lists: make([]listDetail, 0, len(b.Lists))}
	for _, l := range b.Lists {
		d.Lists = append(d.Lists, newListDetail(l))
	}
	d.Board.Lists = nil
	return d
}

// ListBoards returns the caller's boards, newest first.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	boards := []models.Board{}
	if err := h.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", id.ID).
		Order("created_at DESC").Order("id DESC").
		Find(&boards).Error; err != nil {
		serverError(c, err, "Failed to fetch boards")
		return
	}
	util.JSON(c, http.StatusOK, boards)
}

func (h *BoardHandler) CreateBoard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req boardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := req.normalize(); err != nil {
		badRequest(c, err.Error())
		return
	}

	board := models.Board{
		UserID:      id.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&board).Error; err != nil {
		serverError(c, err, "Failed to create board")
		return
	}
	util.JSON(c, http.StatusCreated, board)
}

// GetBoard returns the board with its lists and their cards, both ordered
// by position.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId", "Board")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Authz.Board(ctx, id, boardID); err != nil {
		ownershipError(c, err, "Board")
		return
	}

	var board models.Board
	if err := h.DB.WithContext(ctx).
		Preload("Lists", orderByPosition).
		Preload("Lists.Cards", orderByPosition).
		First(&board, boardID).Error; err != nil {
		serverError(c, err, "Failed to fetch board")
		return
	}
	util.JSON(c, http.StatusOK, newBoardDetail(board))
}

func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId", "Board")
	if !ok {
		return
	}

	var req boardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := req.normalize(); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	board, err := h.Authz.Board(ctx, id, boardID)
	if err != nil {
		ownershipError(c, err, "Board")
		return
	}

	res := h.DB.WithContext(ctx).Model(board).
		Where("user_id = ?", id.ID).
		Updates(map[string]any{"title": req.Title, "description": req.Description})
	if res.Error != nil {
		serverError(c, res.Error, "Failed to update board")
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "Board")
		return
	}

	if err := h.DB.WithContext(ctx).First(board, boardID).Error; err != nil {
		serverError(c, err, "Failed to update board")
		return
	}
	util.JSON(c, http.StatusOK, board)
}

// DeleteBoard removes the board; lists, cards and their label links
// cascade.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId", "Board")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Authz.Board(ctx, id, boardID); err != nil {
		ownershipError(c, err, "Board")
		return
	}

	res := h.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", boardID, id.ID).
		Delete(&models.Board{})
	if res.Error != nil {
		serverError(c, res.Error, "Failed to delete board")
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "Board")
		return
	}
	util.JSON(c, http.StatusOK, util.Message{Message: "Board deleted successfully"})
}
