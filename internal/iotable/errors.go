package iotable

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/mtreps/pkg/errcode"
)

// TableHeaderError is returned when a table has no header or misses
// required columns.
func TableHeaderError(path string, err error) error {
	msg := `Table <em>%s</em> has an invalid header

<em>Problem:</em> %s

<em>How to fix:</em>
  1. Make sure the first row of the file is a header
  2. Check spelling of column names`

	vars := []any{path, err}

	return &gn.Error{
		Code: errcode.TableHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid header in %s: %w", path, err),
	}
}

// TableRowError is returned when a data row cannot be used.
// Line numbers start at 1 and include the header.
func TableRowError(path string, line int, err error) error {
	msg := `Malformed row in <em>%s</em>, line %d

<em>Problem:</em> %s`

	vars := []any{path, line, err}

	return &gn.Error{
		Code: errcode.TableRowError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s:%d: %w", path, line, err),
	}
}

// LegacyHeaderError is returned when a legacy representatives export
// does not declare the expected three columns.
func LegacyHeaderError(path string, header []string) error {
	msg := `Unexpected header of legacy representatives table <em>%s</em>

<em>Found:</em>    %s
<em>Expected:</em> motif,num_profiles,profiles

<em>How to fix:</em>
  If the table is already in the regular format, use it as
  <em>reps</em> of its source in config.yaml instead of <em>legacy</em>`

	got := strings.Join(header, ",")
	vars := []any{path, got}

	return &gn.Error{
		Code: errcode.TableLegacyHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unexpected legacy header in %s: %q", path, got),
	}
}
