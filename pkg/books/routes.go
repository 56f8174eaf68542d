package books

import (
	"github.com/elibdev/elib/pkg/auth"
	"github.com/elibdev/elib/pkg/config"
	"github.com/elibdev/elib/pkg/objectstore"
	"github.com/elibdev/elib/pkg/uploads"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
// Reads are public; create and update require an authenticated caller.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, cfg *config.Config, authMiddleware *auth.Middleware, uploader objectstore.Uploader) {
	bookService := NewService(db)
	ingestor := NewIngestor(bookService, uploader, uploads.NewDiskCleaner())

	h := &handler{
		bookService: bookService,
		ingestor:    ingestor,
		uploadsDir:  cfg.UploadsDir,
	}

	g.GET("", h.list)
	g.GET("/:bookId", h.retrieve)
	g.POST("", h.create, authMiddleware.Authenticate)
	g.PATCH("/:bookId", h.update, authMiddleware.Authenticate)
}
