package uploads

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// StagedUpload describes a file already written to local temporary storage,
// awaiting transfer to the remote object store. It's owned by the request
// that staged it; the backing file is removed once the transfer succeeds.
type StagedUpload struct {
	// Path is the location of the staged file on local disk.
	Path string
	// Filename is the client's original filename. It becomes the stored name
	// in the remote object store.
	Filename string
	// ContentType is the media type declared by the client, e.g. "image/png".
	ContentType string
}

// Subtype returns the portion of the content type after the last "/", e.g.
// "png" for "image/png". This becomes the stored format for cover images.
func (u *StagedUpload) Subtype() string {
	ct := u.ContentType
	if i := strings.LastIndex(ct, "/"); i >= 0 {
		return ct[i+1:]
	}
	return ct
}

// Stage writes a multipart file to dir under a unique name and returns its
// descriptor. When the part carries no Content-Type header, the content is
// sniffed from the file itself.
func Stage(fh *multipart.FileHeader, dir string) (*StagedUpload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer src.Close()

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Unique per upload so concurrent requests never collide on disk.
	path := filepath.Join(dir, id.String()+"-"+filepath.Base(fh.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, errors.WithStack(err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, errors.WithStack(err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		mime, err := mimetype.DetectFile(path)
		if err != nil {
			os.Remove(path)
			return nil, errors.WithStack(err)
		}
		contentType = mime.String()
	}

	return &StagedUpload{
		Path:        path,
		Filename:    fh.Filename,
		ContentType: contentType,
	}, nil
}
