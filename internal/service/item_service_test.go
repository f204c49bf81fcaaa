package service

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_Eligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("no booking", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.user(t, "owner")
		author := env.user(t, "author")
		drill := env.item(t, owner, "Drill", true)

		_, err := env.items.CreateComment(ctx, drill.ID, author.ID, "great")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("approved and ended", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.user(t, "owner")
		author := env.user(t, "author")
		drill := env.item(t, owner, "Drill", true)
		env.approve(t, owner, env.book(t, author, drill, time.Hour, 2*time.Hour))
		env.clock.Advance(3 * time.Hour)

		c, err := env.items.CreateComment(ctx, drill.ID, author.ID, "great")
		require.NoError(t, err)
		assert.NotZero(t, c.ID)
		assert.Equal(t, "great", c.Text)
		assert.Equal(t, env.clock.Now(), c.Created)
		require.NotNil(t, c.Author)
		assert.Equal(t, "author", c.Author.Name)
	})

	t.Run("waiting and ended", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.user(t, "owner")
		author := env.user(t, "author")
		drill := env.item(t, owner, "Drill", true)
		env.book(t, author, drill, time.Hour, 2*time.Hour)
		env.clock.Advance(3 * time.Hour)

		_, err := env.items.CreateComment(ctx, drill.ID, author.ID, "great")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})

	t.Run("approved but not yet ended", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.user(t, "owner")
		author := env.user(t, "author")
		drill := env.item(t, owner, "Drill", true)
		env.approve(t, owner, env.book(t, author, drill, time.Hour, 5*time.Hour))
		env.clock.Advance(2 * time.Hour)

		_, err := env.items.CreateComment(ctx, drill.ID, author.ID, "great")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})

	t.Run("unknown user and item", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.user(t, "owner")
		drill := env.item(t, owner, "Drill", true)

		_, err := env.items.CreateComment(ctx, drill.ID, 999, "great")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = env.items.CreateComment(ctx, 999, owner.ID, "great")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestGetItem_BookingHintsOnlyForOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	drill := env.item(t, owner, "Drill", true)

	last := env.approve(t, owner, env.book(t, booker, drill, time.Hour, 2*time.Hour))
	next := env.approve(t, owner, env.book(t, booker, drill, 10*time.Hour, 11*time.Hour))
	env.approve(t, owner, env.book(t, booker, drill, 20*time.Hour, 21*time.Hour))
	env.book(t, booker, drill, 5*time.Hour, 6*time.Hour) // waiting, ignored
	env.clock.Advance(3 * time.Hour)

	view, err := env.items.GetItem(ctx, drill.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, view.LastBooking)
	require.NotNil(t, view.NextBooking)
	assert.Equal(t, last.ID, view.LastBooking.ID)
	assert.Equal(t, next.ID, view.NextBooking.ID)
	assert.Empty(t, view.Comments)

	view, err = env.items.GetItem(ctx, drill.ID, booker.ID)
	require.NoError(t, err)
	assert.Nil(t, view.LastBooking)
	assert.Nil(t, view.NextBooking)
}

func TestGetItem_IncludesComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	drill := env.item(t, owner, "Drill", true)
	env.approve(t, owner, env.book(t, booker, drill, time.Hour, 2*time.Hour))
	env.clock.Advance(3 * time.Hour)

	_, err := env.items.CreateComment(ctx, drill.ID, booker.ID, "first")
	require.NoError(t, err)
	env.clock.Advance(time.Minute)
	_, err = env.items.CreateComment(ctx, drill.ID, booker.ID, "second")
	require.NoError(t, err)

	view, err := env.items.GetItem(ctx, drill.ID, booker.ID)
	require.NoError(t, err)
	require.Len(t, view.Comments, 2)
	assert.Equal(t, "first", view.Comments[0].Text)
	assert.Equal(t, "second", view.Comments[1].Text)
	require.NotNil(t, view.Comments[0].Author)
	assert.Equal(t, "booker", view.Comments[0].Author.Name)
}

func TestUpdateItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	other := env.user(t, "other")
	drill := env.item(t, owner, "Drill", true)

	name := "Hammer drill"
	blank := "  "
	off := false
	got, err := env.items.UpdateItem(ctx, drill.ID, owner.ID, UpdateItemInput{Name: &name, Description: &blank, Available: &off})
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", got.Name)
	assert.Equal(t, "Drill for rent", got.Description)
	assert.False(t, got.Available)

	view, err := env.items.GetItem(ctx, drill.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", view.Item.Name)
	assert.False(t, view.Item.Available)

	_, err = env.items.UpdateItem(ctx, drill.ID, other.ID, UpdateItemInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.items.UpdateItem(ctx, 999, owner.ID, UpdateItemInput{Name: &name})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	other := env.user(t, "other")
	drill := env.item(t, owner, "Drill", true)

	assert.ErrorIs(t, env.items.DeleteItem(ctx, drill.ID, other.ID), ErrNotOwner)
	require.NoError(t, env.items.DeleteItem(ctx, drill.ID, owner.ID))

	_, err := env.items.GetItem(ctx, drill.ID, owner.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, env.items.DeleteItem(ctx, drill.ID, owner.ID), ErrItemNotFound)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	drill := env.item(t, owner, "Cordless DRILL", true)
	env.item(t, owner, "Drill press", false)
	saw := env.item(t, owner, "Saw", true)
	page := repository.Page{Limit: 20}

	got, err := env.items.Search(ctx, "drill", page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, drill.ID, got[0].ID)

	got, err = env.items.Search(ctx, "FOR RENT", page)
	require.NoError(t, err)
	assert.Len(t, got, 2, "description matches, unavailable excluded")
	assert.Equal(t, saw.ID, got[1].ID)

	got, err = env.items.Search(ctx, "   ", page)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = env.items.Search(ctx, "100%", page)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_NonLatinText(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner")
	drill := env.item(t, owner, "Дрель ударная", true)

	got, err := env.items.Search(context.Background(), "ударная", repository.Page{Limit: 20})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, drill.ID, got[0].ID)
}

func TestListByOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	other := env.user(t, "other")
	first := env.item(t, owner, "Drill", true)
	second := env.item(t, owner, "Saw", true)
	env.item(t, other, "Ladder", true)

	views, err := env.items.ListByOwner(ctx, owner.ID, repository.Page{Limit: 20})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, first.ID, views[0].Item.ID)
	assert.Equal(t, second.ID, views[1].Item.ID)

	views, err = env.items.ListByOwner(ctx, owner.ID, repository.Page{Offset: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, second.ID, views[0].Item.ID)

	_, err = env.items.ListByOwner(ctx, 999, repository.Page{Limit: 20})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateItem_WithRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	asker := env.user(t, "asker")

	req, err := env.requests.CreateRequest(ctx, asker.ID, "need a ladder")
	require.NoError(t, err)

	item, err := env.items.CreateItem(ctx, owner.ID, CreateItemInput{Name: "Ladder", Description: "tall", Available: true, RequestID: &req.ID})
	require.NoError(t, err)
	require.NotNil(t, item.RequestID)
	assert.Equal(t, req.ID, *item.RequestID)

	missing := uint(999)
	_, err = env.items.CreateItem(ctx, owner.ID, CreateItemInput{Name: "Ladder", Description: "tall", Available: true, RequestID: &missing})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = env.items.CreateItem(ctx, 999, CreateItemInput{Name: "Ladder", Description: "tall", Available: true})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// A owns an item, B books and gets approved, C is a stranger. Once the
// booking ends B can comment and C cannot.
func TestSharingFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bob")
	c := env.user(t, "carol")
	drill := env.item(t, a, "Drill", true)

	booking := env.book(t, b, drill, time.Hour, 2*time.Hour)

	_, err := env.bookings.Approve(ctx, booking.ID, b.ID, true)
	assert.ErrorIs(t, err, ErrNotFound, "booker cannot approve")
	_, err = env.bookings.GetBooking(ctx, booking.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotFound, "stranger cannot see booking")

	env.approve(t, a, booking)
	env.clock.Advance(3 * time.Hour)

	_, err = env.items.CreateComment(ctx, drill.ID, b.ID, "worked well")
	require.NoError(t, err)
	_, err = env.items.CreateComment(ctx, drill.ID, c.ID, "looks nice")
	assert.ErrorIs(t, err, ErrCommentNotAllowed)

	view, err := env.items.GetItem(ctx, drill.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, view.LastBooking)
	assert.Equal(t, booking.ID, view.LastBooking.ID)
	assert.Nil(t, view.NextBooking)
	assert.Len(t, view.Comments, 1)
}
