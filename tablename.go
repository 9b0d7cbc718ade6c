package bitfields

import (
	"sync"

	"github.com/jinzhu/inflection"
	path_helpers "github.com/moisespsena-go/path-helpers"
)

type safeMap struct {
	m map[string]string
	l sync.RWMutex
}

func (s *safeMap) Set(key, value string) {
	s.l.Lock()
	defer s.l.Unlock()
	if s.m == nil {
		s.m = map[string]string{}
	}
	s.m[key] = value
}

func (s *safeMap) Get(key string) string {
	s.l.RLock()
	defer s.l.RUnlock()
	return s.m[key]
}

type tablenamePrefixRegister struct {
	m safeMap
}

func (this *tablenamePrefixRegister) Set(pkgPath, prefix string) {
	this.m.Set(pkgPath, prefix)
}

func (this *tablenamePrefixRegister) Get(pkgPath string) (prefix string) {
	return this.m.Get(pkgPath)
}

// SetAuto registers the prefix for the caller's package.
func (this *tablenamePrefixRegister) SetAuto(prefix string) {
	this.m.Set(path_helpers.GetCalledDirUp(1), prefix)
}

// TableNamePrefixRegister holds per-package table name prefixes applied by
// TableNameOf.
var TableNamePrefixRegister tablenamePrefixRegister

// TableNameOf derives the table name of a model struct name: pluralized
// snake case, prefixed with the caller package's registered prefix if any.
func TableNameOf(model string) string {
	name := inflection.Plural(ToDBName(model))
	if prefix := TableNamePrefixRegister.Get(path_helpers.GetCalledDirUp(1)); prefix != "" {
		return prefix + "_" + name
	}
	return name
}
