package ioarchive

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mtreps/pkg/errcode"
)

// ArchiveError is returned when the SQLite archive cannot be created.
func ArchiveError(path string, err error) error {
	msg := `Cannot create SQLite archive <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory is writable
  2. Set <em>paths.archive</em> to an empty value to skip the archive`

	return &gn.Error{
		Code: errcode.ArchiveError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create archive %s: %w", path, err),
	}
}
