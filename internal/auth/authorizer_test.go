package auth_test

import (
	"context"
	"testing"

	"taskify/internal/auth"
	"taskify/internal/database/dbtest"
	"taskify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_OwnershipChain(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	owner := &models.User{ID: 1, Username: "testuser", Email: "test@example.com", PasswordHash: "x"}
	other := &models.User{ID: 2, Username: "other", Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&models.Board{ID: 10, UserID: 1, Title: "b"}).Error)
	require.NoError(t, db.Create(&models.List{ID: 20, BoardID: 10, Title: "l", Position: 1}).Error)
	require.NoError(t, db.Create(&models.Card{ID: 30, ListID: 20, Title: "c", Position: 1}).Error)

	a := auth.NewAuthorizer(db)
	one := auth.Identity{ID: 1}
	two := auth.Identity{ID: 2}

	cases := []struct {
		name string
		id   auth.Identity
		kind auth.ResourceKind
		rid  uint
		want bool
	}{
		{"owner board", one, auth.KindBoard, 10, true},
		{"owner list", one, auth.KindList, 20, true},
		{"owner card", one, auth.KindCard, 30, true},
		{"owner card label", one, auth.KindCardLabel, 30, true},
		{"other board", two, auth.KindBoard, 10, false},
		{"other list", two, auth.KindList, 20, false},
		{"other card", two, auth.KindCard, 30, false},
		{"other card label", two, auth.KindCardLabel, 30, false},
		{"missing board", one, auth.KindBoard, 999, false},
		{"missing card", one, auth.KindCard, 999, false},
		{"anonymous", auth.Identity{}, auth.KindBoard, 10, false},
		{"label is global", two, auth.KindLabel, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.Authorize(ctx, tc.id, tc.kind, tc.rid)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAuthorizer_DeniedLooksLikeMissing(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	chain := dbtest.CreateChain(t, db, alice.ID)

	a := auth.NewAuthorizer(db)
	bobID := auth.Identity{ID: bob.ID}

	_, errOther := a.Card(ctx, bobID, chain.Card.ID)
	_, errMissing := a.Card(ctx, bobID, chain.Card.ID+1000)
	assert.ErrorIs(t, errOther, auth.ErrNotFound)
	assert.ErrorIs(t, errMissing, auth.ErrNotFound)
	assert.Equal(t, errOther, errMissing)

	card, err := a.Card(ctx, auth.Identity{ID: alice.ID}, chain.Card.ID)
	require.NoError(t, err)
	assert.Equal(t, chain.Card.Title, card.Title)

	list, err := a.List(ctx, auth.Identity{ID: alice.ID}, chain.List.ID)
	require.NoError(t, err)
	assert.Equal(t, chain.Board.ID, list.BoardID)
}

func TestAuthorizer_ParentDeleted(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	alice := dbtest.CreateUser(t, db, "alice")
	chain := dbtest.CreateChain(t, db, alice.ID)
	require.NoError(t, db.Delete(&models.Board{}, chain.Board.ID).Error)

	ok, err := auth.NewAuthorizer(db).Authorize(ctx, auth.Identity{ID: alice.ID}, auth.KindCard, chain.Card.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorize_UnknownKind(t *testing.T) {
	db := dbtest.New(t)
	_, err := auth.NewAuthorizer(db).Authorize(context.Background(), auth.Identity{ID: 1}, auth.ResourceKind(42), 1)
	assert.Error(t, err)
}
