package books

import (
	"context"

	"github.com/elibdev/elib/pkg/errcodes"
	"github.com/elibdev/elib/pkg/objectstore"
	"github.com/elibdev/elib/pkg/uploads"
	"github.com/robinjoseph08/golib/logger"
)

const (
	// CoverFolder is the object store folder for cover images.
	CoverFolder = "book-covers"
	// DocumentFolder is the object store folder for book documents.
	DocumentFolder = "book-pdfs"
	// DocumentFormat is forced on every document regardless of its original
	// extension.
	DocumentFormat = "pdf"
)

// Ingestor drives the asset ingestion pipeline: push staged files to the
// remote object store, persist the resulting references, then delete the
// local staged copies. The database write is the commit point; a Book is
// never visible with a reference that didn't upload.
type Ingestor struct {
	books    *Service
	uploader objectstore.Uploader
	cleaner  uploads.Cleaner
	log      logger.Logger
}

func NewIngestor(books *Service, uploader objectstore.Uploader, cleaner uploads.Cleaner) *Ingestor {
	return &Ingestor{
		books:    books,
		uploader: uploader,
		cleaner:  cleaner,
		log:      logger.New(),
	}
}

// CreateBookParams are the inputs to the create pipeline. Both staged files
// are required.
type CreateBookParams struct {
	Title    string
	Genre    string
	Cover    *uploads.StagedUpload
	Document *uploads.StagedUpload
	OwnerID  string
}

// CreateBook uploads both assets, persists the Book, and removes the staged
// files. If either upload fails, nothing is persisted and the staged files
// are left on disk for an out-of-band sweep; an already-uploaded cover is
// likewise left orphaned in remote storage rather than compensated. If
// cleanup fails after the insert, the Book stays created and a cleanup error
// is reported.
func (ing *Ingestor) CreateBook(ctx context.Context, params CreateBookParams) (*Book, error) {
	if params.Title == "" || params.Genre == "" {
		return nil, errcodes.ValidationError("Title and genre are required.")
	}
	if params.Cover == nil || params.Document == nil {
		return nil, errcodes.ValidationError("Cover image and book file are required.")
	}

	coverURL, err := ing.uploader.Upload(ctx, params.Cover.Path, objectstore.UploadOptions{
		Folder:   CoverFolder,
		Filename: params.Cover.Filename,
		Format:   params.Cover.Subtype(),
	})
	if err != nil {
		ing.log.Err(err).Error("cover image upload failed", logger.Data{"path": params.Cover.Path})
		return nil, errcodes.UploadFailed("cover image")
	}

	fileURL, err := ing.uploader.Upload(ctx, params.Document.Path, objectstore.UploadOptions{
		Folder:   DocumentFolder,
		Filename: params.Document.Filename,
		Format:   DocumentFormat,
		Raw:      true,
	})
	if err != nil {
		ing.log.Err(err).Error("book file upload failed", logger.Data{"path": params.Document.Path})
		return nil, errcodes.UploadFailed("book file")
	}

	book := &Book{
		Title:         params.Title,
		Genre:         params.Genre,
		AuthorID:      params.OwnerID,
		CoverImageURL: coverURL,
		FileURL:       fileURL,
	}
	if err := ing.books.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	// The Book is durable from here on; a failed delete doesn't undo it.
	for _, staged := range []*uploads.StagedUpload{params.Cover, params.Document} {
		if err := ing.cleaner.Remove(staged.Path); err != nil {
			ing.log.Err(err).Error("staged file cleanup failed", logger.Data{"path": staged.Path})
			return book, errcodes.CleanupFailed("book files")
		}
	}

	return book, nil
}

// UpdateBookParams are the inputs to the update pipeline. Cover and Document
// are optional; a metadata-only update is valid.
type UpdateBookParams struct {
	BookID   string
	Title    string
	Genre    string
	Cover    *uploads.StagedUpload
	Document *uploads.StagedUpload
	CallerID string
}

// UpdateBook re-uploads whichever assets are supplied and rewrites the
// metadata. Only the Book's owner may update it; the existence check runs
// before the ownership check. Each supplied asset is uploaded and its staged
// file deleted before the database write; a failed delete aborts the whole
// update for either asset, leaving the stored Book untouched.
func (ing *Ingestor) UpdateBook(ctx context.Context, params UpdateBookParams) (*Book, error) {
	if params.Title == "" || params.Genre == "" {
		return nil, errcodes.ValidationError("Title and genre are required.")
	}

	book, err := ing.books.RetrieveBook(ctx, RetrieveBookOptions{ID: &params.BookID})
	if err != nil {
		return nil, err
	}

	if book.AuthorID != params.CallerID {
		return nil, errcodes.Forbidden("Updating another user's book")
	}

	book.Title = params.Title
	book.Genre = params.Genre
	columns := []string{"title", "genre"}

	if params.Cover != nil {
		coverURL, err := ing.uploader.Upload(ctx, params.Cover.Path, objectstore.UploadOptions{
			Folder:   CoverFolder,
			Filename: params.Cover.Filename,
			Format:   params.Cover.Subtype(),
		})
		if err != nil {
			ing.log.Err(err).Error("cover image upload failed", logger.Data{"path": params.Cover.Path})
			return nil, errcodes.UploadFailed("cover image")
		}
		if err := ing.cleaner.Remove(params.Cover.Path); err != nil {
			ing.log.Err(err).Error("staged cover cleanup failed", logger.Data{"path": params.Cover.Path})
			return nil, errcodes.CleanupFailed("cover image")
		}
		book.CoverImageURL = coverURL
		columns = append(columns, "cover_image_url")
	}

	if params.Document != nil {
		fileURL, err := ing.uploader.Upload(ctx, params.Document.Path, objectstore.UploadOptions{
			Folder:   DocumentFolder,
			Filename: params.Document.Filename,
			Format:   DocumentFormat,
			Raw:      true,
		})
		if err != nil {
			ing.log.Err(err).Error("book file upload failed", logger.Data{"path": params.Document.Path})
			return nil, errcodes.UploadFailed("book file")
		}
		if err := ing.cleaner.Remove(params.Document.Path); err != nil {
			ing.log.Err(err).Error("staged book file cleanup failed", logger.Data{"path": params.Document.Path})
			return nil, errcodes.CleanupFailed("book file")
		}
		book.FileURL = fileURL
		columns = append(columns, "file_url")
	}

	if err := ing.books.UpdateBook(ctx, book, UpdateBookOptions{Columns: columns}); err != nil {
		return nil, err
	}

	return book, nil
}
