package books

import (
	"context"
	"testing"
	"time"

	"github.com/elibdev/elib/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCreateBook(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	createTestUser(t, db, "u1")
	svc := NewService(db)
	ctx := context.Background()

	book := &Book{
		Title:         "Dune",
		Genre:         "scifi",
		AuthorID:      "u1",
		CoverImageURL: "https://cdn.example.com/book-covers/dune.png",
		FileURL:       "https://cdn.example.com/book-pdfs/dune.pdf",
	}

	err := svc.CreateBook(ctx, book)
	require.NoError(t, err)

	assert.NotEmpty(t, book.ID)
	assert.False(t, book.CreatedAt.IsZero())
	assert.Equal(t, book.CreatedAt, book.UpdatedAt)
}

func TestServiceRetrieveBook(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	createTestUser(t, db, "u1")
	svc := NewService(db)
	ctx := context.Background()

	book := &Book{
		Title:         "Dune",
		Genre:         "scifi",
		AuthorID:      "u1",
		CoverImageURL: "https://cdn.example.com/book-covers/dune.png",
		FileURL:       "https://cdn.example.com/book-pdfs/dune.pdf",
	}
	require.NoError(t, svc.CreateBook(ctx, book))

	t.Run("by id", func(t *testing.T) {
		found, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
		require.NoError(t, err)
		assert.Equal(t, book.ID, found.ID)
		assert.Equal(t, "Dune", found.Title)
	})

	t.Run("not found", func(t *testing.T) {
		id := "missing"
		_, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
		require.Error(t, err)
		assert.ErrorIs(t, err, errcodes.NotFound("Book"))
	})

	t.Run("by author", func(t *testing.T) {
		author := "u1"
		found, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID, AuthorID: &author})
		require.NoError(t, err)
		assert.Equal(t, book.ID, found.ID)

		other := "u2"
		_, err = svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID, AuthorID: &other})
		assert.ErrorIs(t, err, errcodes.NotFound("Book"))
	})
}

func TestServiceListBooks(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")
	svc := NewService(db)
	ctx := context.Background()

	first := &Book{
		Title:         "Dune",
		Genre:         "scifi",
		AuthorID:      "u1",
		CoverImageURL: "https://cdn.example.com/book-covers/dune.png",
		FileURL:       "https://cdn.example.com/book-pdfs/dune.pdf",
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	second := &Book{
		Title:         "Hyperion",
		Genre:         "scifi",
		AuthorID:      "u2",
		CoverImageURL: "https://cdn.example.com/book-covers/hyperion.png",
		FileURL:       "https://cdn.example.com/book-pdfs/hyperion.pdf",
		CreatedAt:     time.Now(),
	}
	require.NoError(t, svc.CreateBook(ctx, first))
	require.NoError(t, svc.CreateBook(ctx, second))

	all, err := svc.ListBooks(ctx, ListBooksOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Dune", all[0].Title)
	assert.Equal(t, "Hyperion", all[1].Title)

	author := "u2"
	mine, err := svc.ListBooks(ctx, ListBooksOptions{AuthorID: &author})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Hyperion", mine[0].Title)
}

func TestServiceUpdateBook(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	createTestUser(t, db, "u1")
	svc := NewService(db)
	ctx := context.Background()

	book := &Book{
		Title:         "Dune",
		Genre:         "scifi",
		AuthorID:      "u1",
		CoverImageURL: "https://cdn.example.com/book-covers/dune.png",
		FileURL:       "https://cdn.example.com/book-pdfs/dune.pdf",
	}
	require.NoError(t, svc.CreateBook(ctx, book))

	book.Title = "Dune Messiah"
	book.CoverImageURL = "https://cdn.example.com/book-covers/messiah.png"

	// Only the named columns are written.
	err := svc.UpdateBook(ctx, book, UpdateBookOptions{Columns: []string{"title"}})
	require.NoError(t, err)

	stored, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", stored.Title)
	assert.Equal(t, "https://cdn.example.com/book-covers/dune.png", stored.CoverImageURL)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt) || stored.UpdatedAt.Equal(stored.CreatedAt))

	// No columns means nothing to do.
	err = svc.UpdateBook(ctx, book, UpdateBookOptions{})
	require.NoError(t, err)
}
