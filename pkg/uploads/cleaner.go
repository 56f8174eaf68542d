package uploads

import (
	"os"

	"github.com/pkg/errors"
)

// Cleaner removes staged files after their content has been durably persisted
// remotely. It's an interface so that pipeline tests can inject deletion
// failures.
type Cleaner interface {
	Remove(path string) error
}

// DiskCleaner deletes staged files from the local filesystem.
type DiskCleaner struct{}

func NewDiskCleaner() *DiskCleaner {
	return &DiskCleaner{}
}

func (*DiskCleaner) Remove(path string) error {
	return errors.WithStack(os.Remove(path))
}
