package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"postboard/internal/models"
	"postboard/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ListOrderAndFilter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	leo := testutil.CreateUser(t, db, "leo")
	anna := testutil.CreateUser(t, db, "anna")
	cats := testutil.CreateGroup(t, db, "Cats", "cats")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := &models.Post{Text: fmt.Sprintf("leo %d", i), AuthorID: leo.ID, PubDate: base.Add(time.Duration(i) * time.Hour)}
		if i%2 == 0 {
			p.GroupID = &cats.ID
		}
		require.NoError(t, repo.Create(ctx, p))
	}
	require.NoError(t, repo.Create(ctx, &models.Post{Text: "anna", AuthorID: anna.ID, PubDate: base.Add(-time.Hour)}))

	t.Run("feed is newest first", func(t *testing.T) {
		posts, err := repo.List(ctx, PostFilter{}, 10, 0)
		require.NoError(t, err)
		require.Len(t, posts, 6)
		assert.Equal(t, "leo 4", posts[0].Text)
		assert.Equal(t, "anna", posts[5].Text)
		for i := 1; i < len(posts); i++ {
			assert.False(t, posts[i].PubDate.After(posts[i-1].PubDate))
		}
		assert.Equal(t, "leo", posts[0].Author.Username)
		require.NotNil(t, posts[0].Group)
		assert.Equal(t, "cats", posts[0].Group.Slug)
	})

	t.Run("group filter", func(t *testing.T) {
		filter := PostFilter{GroupID: &cats.ID}
		total, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)

		posts, err := repo.List(ctx, filter, 2, 2)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "leo 0", posts[0].Text)
	})

	t.Run("author filter", func(t *testing.T) {
		total, err := repo.Count(ctx, PostFilter{AuthorID: &anna.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("ties break on id", func(t *testing.T) {
		same := base.Add(24 * time.Hour)
		first := &models.Post{Text: "tie a", AuthorID: anna.ID, PubDate: same}
		second := &models.Post{Text: "tie b", AuthorID: anna.ID, PubDate: same}
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		posts, err := repo.List(ctx, PostFilter{}, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, second.ID, posts[0].ID)
		assert.Equal(t, first.ID, posts[1].ID)
	})
}

func TestPostRepository_GetByAuthorAndID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	leo := testutil.CreateUser(t, db, "leo")
	anna := testutil.CreateUser(t, db, "anna")
	post := testutil.CreatePost(t, db, leo, nil, "mine")

	got, err := repo.GetByAuthorAndID(ctx, leo.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Text)

	_, err = repo.GetByAuthorAndID(ctx, anna.ID, post.ID)
	assert.True(t, models.IsNotFound(err))

	_, err = repo.GetByID(ctx, post.ID+100)
	assert.True(t, models.IsNotFound(err))
}

func TestPostRepository_UpdateContent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	leo := testutil.CreateUser(t, db, "leo")
	anna := testutil.CreateUser(t, db, "anna")
	cats := testutil.CreateGroup(t, db, "Cats", "cats")
	post := testutil.CreatePost(t, db, leo, cats, "before")

	original, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)

	// Every field is set, but only text and group may change.
	err = repo.UpdateContent(ctx, &models.Post{
		ID:       post.ID,
		Text:     "after",
		AuthorID: anna.ID,
		PubDate:  time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		GroupID:  nil,
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Text)
	assert.Nil(t, updated.GroupID)
	assert.Equal(t, leo.ID, updated.AuthorID)
	assert.True(t, original.PubDate.Equal(updated.PubDate))

	require.NoError(t, repo.UpdateContent(ctx, &models.Post{ID: post.ID, Text: "regrouped", GroupID: uintPtr(cats.ID)}))
	updated, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.GroupID)
	assert.Equal(t, cats.ID, *updated.GroupID)

	assert.True(t, models.IsNotFound(repo.UpdateContent(ctx, &models.Post{ID: 424242, Text: "x"})))
}

func TestPostRepository_CountPostgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE group_id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	total, err := repo.Count(context.Background(), PostFilter{GroupID: uintPtr(7)})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CreateRequiresTextAndAuthor(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	leo := testutil.CreateUser(t, db, "leo")

	assert.True(t, models.IsValidation(repo.Create(ctx, &models.Post{Text: "   ", AuthorID: leo.ID})))
	assert.True(t, models.IsValidation(repo.Create(ctx, &models.Post{Text: "orphan"})))

	total, err := repo.Count(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}
