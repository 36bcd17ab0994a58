package auth

import (
	"context"
	"errors"
	"fmt"

	"taskify/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound covers both a missing resource and one owned by someone
// else, so callers cannot probe for other users' data.
var ErrNotFound = errors.New("auth: resource not found or access denied")

// ResourceKind names what Authorize is asked about.
type ResourceKind int

const (
	KindBoard ResourceKind = iota + 1
	KindList
	KindCard
	KindLabel
	// KindCardLabel is a card/label association; the id is the card's.
	KindCardLabel
)

func (k ResourceKind) String() string {
	switch k {
	case KindBoard:
		return "board"
	case KindList:
		return "list"
	case KindCard:
		return "card"
	case KindLabel:
		return "label"
	case KindCardLabel:
		return "card_label"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Authorizer walks the ownership chain card → list → board → user on every
// call. Nothing is cached.
type Authorizer struct {
	DB *gorm.DB
}

func NewAuthorizer(db *gorm.DB) *Authorizer {
	return &Authorizer{DB: db}
}

// Authorize reports whether id may act on the resource. A denial and a
// missing resource both return false with a nil error; only store failures
// return an error.
func (a *Authorizer) Authorize(ctx context.Context, id Identity, kind ResourceKind, resourceID uint) (bool, error) {
	var err error
	switch kind {
	case KindBoard:
		_, err = a.Board(ctx, id, resourceID)
	case KindList:
		_, err = a.List(ctx, id, resourceID)
	case KindCard, KindCardLabel:
		_, err = a.Card(ctx, id, resourceID)
	case KindLabel:
		// labels are global
		return true, nil
	default:
		return false, fmt.Errorf("auth: unknown resource kind %s", kind)
	}

	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Board loads the board when it belongs to id.
func (a *Authorizer) Board(ctx context.Context, id Identity, boardID uint) (*models.Board, error) {
	if id.ID == 0 {
		return nil, ErrNotFound
	}
	var board models.Board
	err := a.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", boardID, id.ID).
		First(&board).Error
	if err != nil {
		return nil, fold(err, "board")
	}
	return &board, nil
}

// List loads the list when its board belongs to id.
func (a *Authorizer) List(ctx context.Context, id Identity, listID uint) (*models.List, error) {
	if id.ID == 0 {
		return nil, ErrNotFound
	}
	var list models.List
	err := a.DB.WithContext(ctx).
		Select("lists.*").
		Joins("JOIN boards ON boards.id = lists.board_id").
		Where("lists.id = ? AND boards.user_id = ?", listID, id.ID).
		First(&list).Error
	if err != nil {
		return nil, fold(err, "list")
	}
	return &list, nil
}

// Card loads the card when its list's board belongs to id.
func (a *Authorizer) Card(ctx context.Context, id Identity, cardID uint) (*models.Card, error) {
	if id.ID == 0 {
		return nil, ErrNotFound
	}
	var card models.Card
	err := a.DB.WithContext(ctx).
		Select("cards.*").
		Joins("JOIN lists ON lists.id = cards.list_id").
		Joins("JOIN boards ON boards.id = lists.board_id").
		Where("cards.id = ? AND boards.user_id = ?", cardID, id.ID).
		First(&card).Error
	if err != nil {
		return nil, fold(err, "card")
	}
	return &card, nil
}

func fold(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("load %s: %w", what, err)
}
