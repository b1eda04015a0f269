package ioreconcile

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/mtreps/pkg/errcode"
	"github.com/gnames/mtreps/pkg/profiles"
)

// CancelledError is returned when reconciliation is interrupted
// before outputs are written.
type CancelledError struct {
	error
	gnlib.MessageBase
}

// NewCancelledError creates a new cancellation error.
func NewCancelledError(err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Reconciliation Cancelled</title>
<warn>The run was interrupted before any output was written.</warn>
Existing output files are unchanged.
`,
		Vars: nil,
	}

	return CancelledError{
		error:       fmt.Errorf("reconciliation cancelled: %w", err),
		MessageBase: msgBase,
	}
}

// CollisionError is returned when accessions are claimed by several
// metadata rows and collisions are configured to be fatal.
func CollisionError(cs []profiles.Collision) error {
	msg := `Found <em>%d</em> accession(s) claimed by more than one metadata row:
  %s

<em>How to fix:</em>
  1. Remove duplicate accessions from source metadata tables
  2. Set <em>reconcile.fail_on_collision: false</em> to keep both rows`

	lines := make([]string, 0, min(len(cs), 10))
	for i, v := range cs {
		if i == 10 {
			lines = append(lines, "...")
			break
		}
		lines = append(lines, collisionString(v))
	}
	return &gn.Error{
		Code: errcode.ReconcileCollisionError,
		Msg:  msg,
		Vars: []any{len(cs), strings.Join(lines, "\n  ")},
		Err: fmt.Errorf("%d accession collisions, first: %s",
			len(cs), collisionString(cs[0])),
	}
}

// OverwriteInputError is returned when an output path points to an
// input table.
func OverwriteInputError(path string) error {
	msg := `Output <em>%s</em> would overwrite an input table

<em>How to fix:</em>
  Point outputs in config.yaml to different files`

	return &gn.Error{
		Code: errcode.ReconcileSourceError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("output %s is also an input", path),
	}
}

// PublishError is returned when canonical tables cannot be copied to
// the publish directory.
func PublishError(dir string, err error) error {
	msg := `Cannot publish data to <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory is writable
  2. Set <em>paths.publish_dir</em> to an empty value to skip publishing`

	return &gn.Error{
		Code: errcode.PublishError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot publish to %s: %w", dir, err),
	}
}

// ReportError is returned when the run report cannot be created.
func ReportError(path string, err error) error {
	msg := "Cannot create report <em>%s</em>"
	return &gn.Error{
		Code: errcode.ReportError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create report %s: %w", path, err),
	}
}

func collisionString(c profiles.Collision) string {
	srcs := make([]string, len(c.Sources))
	for i, v := range c.Sources {
		srcs[i] = string(v)
	}
	return c.Accession + " (" + strings.Join(srcs, ", ") + ")"
}
