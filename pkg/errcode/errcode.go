package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigPathError
	ConfigSourceError

	// Table errors
	TableHeaderError
	TableRowError
	TableLegacyHeaderError

	// Reconcile errors
	ReconcileSourceError
	ReconcileCollisionError

	// Output errors
	ArchiveError
	PublishError
	ReportError
)
