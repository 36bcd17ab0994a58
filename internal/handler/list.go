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

// ListHandler serves board lists and /api/lists/:listId.
type ListHandler struct {
	DB    *gorm.DB
	Authz *auth.Authorizer
}

func NewListHandler(db *gorm.DB, authz *auth.Authorizer) *ListHandler {
	return &ListHandler{DB: db, Authz: authz}
}

type listDetail struct {
	models.List
	Cards []models.Card `json:"cards"`
}

func newListDetail(l models.List) listDetail {
	d := listDetail{List: l, Cards: l.Cards}
	if d.Cards == nil {
		d.Cards = []models.Card{}
	}
	d.List.Cards = nil
	return d
}

type createListReq struct {
	Title string `json:"title"`
}

type updateListReq struct {
	Title    string `json:"title"`
	Position *int   `json:"position"`
}

// ListLists returns the lists of a board ordered by position.
func (h *ListHandler) ListLists(c *gin.Context) {
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

	lists := []models.List{}
	if err := h.DB.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&lists).Error; err != nil {
		serverError(c, err, "Failed to fetch lists")
		return
	}
	util.JSON(c, http.StatusOK, lists)
}

// CreateList appends a list at the end of the board.
func (h *ListHandler) CreateList(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId", "Board")
	if !ok {
		return
	}

	var req createListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := util.ValidateTitle(req.Title); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Authz.Board(ctx, id, boardID); err != nil {
		ownershipError(c, err, "Board")
		return
	}

	var list models.List
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextPosition(tx, &models.List{}, "board_id", boardID)
		if err != nil {
			return err
		}
		list = models.List{BoardID: boardID, Title: req.Title, Position: pos}
		return tx.Create(&list).Error
	})
	if err != nil {
		serverError(c, err, "Failed to create list")
		return
	}
	util.JSON(c, http.StatusCreated, list)
}

// GetList returns the list with its cards.
func (h *ListHandler) GetList(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "listId", "List")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	list, err := h.Authz.List(ctx, id, listID)
	if err != nil {
		ownershipError(c, err, "List")
		return
	}

	if err := h.DB.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("position ASC").
		Find(&list.Cards).Error; err != nil {
		serverError(c, err, "Failed to fetch list")
		return
	}
	util.JSON(c, http.StatusOK, newListDetail(*list))
}

func (h *ListHandler) UpdateList(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "listId", "List")
	if !ok {
		return
	}

	var req updateListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := util.ValidateTitle(req.Title); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	list, err := h.Authz.List(ctx, id, listID)
	if err != nil {
		ownershipError(c, err, "List")
		return
	}

	updates := map[string]any{"title": req.Title}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	res := h.DB.WithContext(ctx).Model(list).Updates(updates)
	if res.Error != nil {
		serverError(c, res.Error, "Failed to update list")
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "List")
		return
	}

	if err := h.DB.WithContext(ctx).First(list, listID).Error; err != nil {
		serverError(c, err, "Failed to update list")
		return
	}
	util.JSON(c, http.StatusOK, list)
}

func (h *ListHandler) DeleteList(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "listId", "List")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Authz.List(ctx, id, listID); err != nil {
		ownershipError(c, err, "List")
		return
	}

	res := h.DB.WithContext(ctx).Delete(&models.List{}, listID)
	if res.Error != nil {
		serverError(c, res.Error, "Failed to delete list")
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "List")
		return
	}
	util.JSON(c, http.StatusOK, util.Message{Message: "List deleted successfully"})
}
