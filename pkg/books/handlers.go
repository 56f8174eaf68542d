package books

import (
	"mime/multipart"
	"net/http"

	"github.com/elibdev/elib/pkg/auth"
	"github.com/elibdev/elib/pkg/errcodes"
	"github.com/elibdev/elib/pkg/uploads"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
	ingestor    *Ingestor
	uploadsDir  string
}

// stageFormFile writes the named multipart part to the local uploads
// directory, the ingestion pipeline's staging area. Returns nil when the part
// wasn't supplied.
func (h *handler) stageFormFile(files map[string]*multipart.FileHeader, field string) (*uploads.StagedUpload, error) {
	fh, ok := files[field]
	if !ok {
		return nil, nil
	}
	staged, err := uploads.Stage(fh, h.uploadsDir)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return staged, nil
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	cover, err := h.stageFormFile(params.FormFiles, FieldCoverImage)
	if err != nil {
		return err
	}
	document, err := h.stageFormFile(params.FormFiles, FieldFile)
	if err != nil {
		return err
	}

	book, err := h.ingestor.CreateBook(ctx, CreateBookParams{
		Title:    params.Title,
		Genre:    params.Genre,
		Cover:    cover,
		Document: document,
		OwnerID:  auth.CallerID(c),
	})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, CreateBookResponse{ID: book.ID}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	bookID := c.Param("bookId")

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	cover, err := h.stageFormFile(params.FormFiles, FieldCoverImage)
	if err != nil {
		return err
	}
	document, err := h.stageFormFile(params.FormFiles, FieldFile)
	if err != nil {
		return err
	}

	book, err := h.ingestor.UpdateBook(ctx, UpdateBookParams{
		BookID:   bookID,
		Title:    params.Title,
		Genre:    params.Genre,
		Cover:    cover,
		Document: document,
		CallerID: auth.CallerID(c),
	})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	bookID := c.Param("bookId")
	if bookID == "" {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}
