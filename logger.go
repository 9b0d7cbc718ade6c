package bitfields

import (
	"github.com/moisespsena-go/logging"
	path_helpers "github.com/moisespsena-go/path-helpers"
)

var log = logging.GetOrCreateLogger(path_helpers.GetCalledDirUp(0))

// SetLogger replaces the package logger.
func SetLogger(logger logging.Logger) {
	log = logger
}
