package books

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a catalog entry. CoverImageURL and FileURL only ever hold durable
// references returned by the remote object store; a Book row is written only
// after the uploads behind it have succeeded.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            string    `bun:",pk,nullzero" json:"id"`
	Title         string    `bun:",nullzero" json:"title"`
	Genre         string    `bun:",nullzero" json:"genre"`
	AuthorID      string    `bun:"author_id,nullzero" json:"author"`
	CoverImageURL string    `bun:"cover_image_url,nullzero" json:"coverImage"`
	FileURL       string    `bun:"file_url,nullzero" json:"file"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
