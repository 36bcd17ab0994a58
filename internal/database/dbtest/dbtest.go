// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"taskify/internal/config"
	"taskify/internal/database"
	"taskify/internal/models"
	"taskify/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// New returns an in-memory database with all migrations applied. It is
// closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(config.DatabaseConfig{Path: path})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Password is the password of every user made by CreateUser.
const Password = "password123"

// CreateUser inserts <username> with <username>@example.com and Password.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := util.HashPassword(Password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// Chain is a board → list → card path owned by one user.
type Chain struct {
	Board *models.Board
	List  *models.List
	Card  *models.Card
}

// CreateChain inserts a board, a list on it and a card in that list.
func CreateChain(t testing.TB, db *gorm.DB, userID uint) Chain {
	t.Helper()
	board := &models.Board{UserID: userID, Title: "Board"}
	if err := db.Create(board).Error; err != nil {
		t.Fatalf("create board: %v", err)
	}
	list := &models.List{BoardID: board.ID, Title: "Todo", Position: 1}
	if err := db.Create(list).Error; err != nil {
		t.Fatalf("create list: %v", err)
	}
	card := &models.Card{ListID: list.ID, Title: "Card", Position: 1}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("create card: %v", err)
	}
	return Chain{Board: board, List: list, Card: card}
}
