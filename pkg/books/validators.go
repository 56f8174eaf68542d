package books

import "mime/multipart"

// Form field names for the two asset roles.
const (
	FieldCoverImage = "coverImage"
	FieldFile       = "file"
)

// CreateBookPayload is the multipart create form: metadata fields plus the
// two required file parts.
type CreateBookPayload struct {
	Title     string                           `form:"title" json:"title" validate:"required,max=300"`
	Genre     string                           `form:"genre" json:"genre" validate:"required,max=100"`
	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}

// UpdateBookPayload is the multipart update form. File parts are optional; a
// metadata-only update is valid.
type UpdateBookPayload struct {
	Title     string                           `form:"title" json:"title" validate:"required,max=300"`
	Genre     string                           `form:"genre" json:"genre" validate:"required,max=100"`
	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}

// CreateBookResponse is the create response body.
type CreateBookResponse struct {
	ID string `json:"id"`
}
