package repository

import (
	"context"
	"testing"

	"postboard/internal/models"
	"postboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	cats := &models.Group{Title: "Cats", Slug: "cats", Description: "All about cats"}
	require.NoError(t, repo.Create(ctx, cats))
	require.NoError(t, repo.Create(ctx, &models.Group{Title: "Books", Slug: "books"}))

	t.Run("GetBySlug", func(t *testing.T) {
		got, err := repo.GetBySlug(ctx, "cats")
		require.NoError(t, err)
		assert.Equal(t, cats.ID, got.ID)
		assert.Equal(t, "Cats", got.String())
	})

	t.Run("GetBySlug missing", func(t *testing.T) {
		_, err := repo.GetBySlug(ctx, "does-not-exist")
		require.Error(t, err)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("duplicate slug", func(t *testing.T) {
		err := repo.Create(ctx, &models.Group{Title: "Other cats", Slug: "cats"})
		assert.True(t, models.IsConflict(err))
	})

	t.Run("List orders by title", func(t *testing.T) {
		groups, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "books", groups[0].Slug)
		assert.Equal(t, "cats", groups[1].Slug)
	})

	t.Run("Delete keeps posts without a group", func(t *testing.T) {
		author := testutil.CreateUser(t, db, "leo")
		post := testutil.CreatePost(t, db, author, cats, "meow")

		require.NoError(t, repo.Delete(ctx, cats.ID))

		var reloaded models.Post
		require.NoError(t, db.First(&reloaded, post.ID).Error)
		assert.Nil(t, reloaded.GroupID)
		assert.Equal(t, "meow", reloaded.Text)

		_, err := repo.GetByID(ctx, cats.ID)
		assert.True(t, models.IsNotFound(err))
		assert.True(t, models.IsNotFound(repo.Delete(ctx, cats.ID)))
	})
}
