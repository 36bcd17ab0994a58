package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"taskify/internal/auth"
	"taskify/internal/models"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CardHandler serves list cards, /api/cards/:cardId and card labels.
type CardHandler struct {
	DB    *gorm.DB
	Authz *auth.Authorizer
}

func NewCardHandler(db *gorm.DB, authz *auth.Authorizer) *CardHandler {
	return &CardHandler{DB: db, Authz: authz}
}

type cardDetail struct {
	models.Card
	Labels []models.Label `json:"labels"`
}

type createCardReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateCardReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ListID      *uint  `json:"list_id"`
	Position    *int   `json:"position"`
}

type addLabelReq struct {
	LabelID uint `json:"label_id"`
}

// ListCards returns the cards of a list ordered by position.
func (h *CardHandler) ListCards(c *gin.Context) {
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

	cards := []models.Card{}
	if err := h.DB.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("position ASC").
		Find(&cards).Error; err != nil {
		serverError(c, err, "Failed to fetch cards")
		return
	}
	util.JSON(c, http.StatusOK, cards)
}

// CreateCard appends a card at the end of the list.
func (h *CardHandler) CreateCard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "listId", "List")
	if !ok {
		return
	}

	var req createCardReq
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
	if _, err := h.Authz.List(ctx, id, listID); err != nil {
		ownershipError(c, err, "List")
		return
	}

	var card models.Card
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextPosition(tx, &models.Card{}, "list_id", listID)
		if err != nil {
			return err
		}
		card = models.Card{
			ListID:      listID,
			Title:       req.Title,
			Description: req.Description,
			Position:    pos,
		}
		return tx.Create(&card).Error
	})
	if err != nil {
		serverError(c, err, "Failed to create card")
		return
	}
	util.JSON(c, http.StatusCreated, card)
}

// GetCard returns the card with its labels.
func (h *CardHandler) GetCard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", "Card")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	card, err := h.Authz.Card(ctx, id, cardID)
	if err != nil {
		ownershipError(c, err, "Card")
		return
	}

	labels, err := h.cardLabels(c, cardID)
	if err != nil {
		serverError(c, err, "Failed to fetch card")
		return
	}
	util.JSON(c, http.StatusOK, cardDetail{Card: *card, Labels: labels})
}

// UpdateCard edits a card. Setting list_id moves it, which requires the
// caller to own the target list too.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", "Card")
	if !ok {
		return
	}

	var req updateCardReq
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
	card, err := h.Authz.Card(ctx, id, cardID)
	if err != nil {
		ownershipError(c, err, "Card")
		return
	}

	updates := map[string]any{
		"title":       req.Title,
		"description": req.Description,
	}
	if req.ListID != nil {
		if _, err := h.Authz.List(ctx, id, *req.ListID); err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				util.Error(c, http.StatusNotFound, util.CodeNotFound, "Target list not found or access denied")
			} else {
				serverError(c, err, "Failed to update card")
			}
			return
		}
		updates["list_id"] = *req.ListID
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}

	res := h.DB.WithContext(ctx).Model(card).Updates(updates)
	if res.Error != nil {
		serverError(c, res.Error, "Failed to update card")
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "Card")
		return
	}

	if err := h.DB.WithContext(ctx).First(card, cardID).Error; err != nil {
		serverError(c, err, "Failed to update card")
		return
	}
	util.JSON(c, http.StatusOK, card)
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", "Card")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Authz.Card(ctx, id, cardID); err != nil {
		ownershipError(c, err, "Card")
		return
	}

	res := h.DB.WithContext(ctx).Delete(&models.Card{}, cardID)
	if res.Error != nil {
		serverError(c, res.Error, "Failed to delete card")
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "Card")
		return
	}
	util.JSON(c, http.StatusOK, util.Message{Message: "Card deleted successfully"})
}

// ---------- card labels ----------

func (h *CardHandler) cardLabels(c *gin.Context, cardID uint) ([]models.Label, error) {
	labels := []models.Label{}
	err := h.DB.WithContext(c.Request.Context()).
		Select("labels.*").
		Joins("JOIN card_labels ON card_labels.label_id = labels.id").
		Where("card_labels.card_id = ?", cardID).
		Order("labels.name ASC").
		Find(&labels).Error
	return labels, err
}

// authorizeCardLabels checks the caller owns the card side of the
// association.
func (h *CardHandler) authorizeCardLabels(c *gin.Context, id auth.Identity, cardID uint) bool {
	allowed, err := h.Authz.Authorize(c.Request.Context(), id, auth.KindCardLabel, cardID)
	if err != nil {
		serverError(c, err, "Failed to load Card")
		return false
	}
	if !allowed {
		notFound(c, "Card")
		return false
	}
	return true
}

func (h *CardHandler) ListCardLabels(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", "Card")
	if !ok {
		return
	}
	if !h.authorizeCardLabels(c, id, cardID) {
		return
	}

	labels, err := h.cardLabels(c, cardID)
	if err != nil {
		serverError(c, err, "Failed to fetch labels for card")
		return
	}
	util.JSON(c, http.StatusOK, labels)
}

func (h *CardHandler) AddCardLabel(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", "Card")
	if !ok {
		return
	}

	var req addLabelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.LabelID == 0 {
		badRequest(c, "Label ID is required")
		return
	}
	if !h.authorizeCardLabels(c, id, cardID) {
		return
	}

	ctx := c.Request.Context()
	var label models.Label
	if err := h.DB.WithContext(ctx).First(&label, req.LabelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Label not found")
		} else {
			serverError(c, err, "Failed to add label to card")
		}
		return
	}

	err := h.DB.WithContext(ctx).Create(&models.CardLabel{CardID: cardID, LabelID: req.LabelID}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "Label is already assigned to this card")
			return
		}
		serverError(c, err, "Failed to add label to card")
		return
	}
	util.JSON(c, http.StatusCreated, util.Message{Message: "Label added to card successfully"})
}

// RemoveCardLabel accepts the label id either as the :labelId path
// segment or as the labelId query parameter.
func (h *CardHandler) RemoveCardLabel(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", "Card")
	if !ok {
		return
	}

	raw := c.Param("labelId")
	if raw == "" {
		raw = c.Query("labelId")
	}
	if raw == "" {
		badRequest(c, "Label ID is required")
		return
	}
	labelID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		badRequest(c, "Label ID must be a number")
		return
	}

	if !h.authorizeCardLabels(c, id, cardID) {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).
		Where("card_id = ? AND label_id = ?", cardID, labelID).
		Delete(&models.CardLabel{})
	if res.Error != nil {
		serverError(c, res.Error, "Failed to remove label from card")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Label is not assigned to this card or does not exist")
		return
	}
	util.JSON(c, http.StatusOK, util.Message{Message: "Label removed from card successfully"})
}
