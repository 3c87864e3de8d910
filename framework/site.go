package framework

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Site identifies the source location where an expectation, allocation, or
// failure originated. Failure messages always pair the site of the violation
// with the site of the declaration it violated.
type Site struct {
	File string
	Line int
}

// CallerSite captures the source location of a caller. A skip of 0 is the
// immediate caller of CallerSite; each additional level moves one frame up,
// the same convention as runtime.Caller.
func CallerSite(skip int) Site {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{}
	}
	return Site{File: filepath.Base(file), Line: line}
}

// IsSet returns true if the Site refers to a real source location.
func (s Site) IsSet() bool {
	return s.File != "" && s.Line != 0
}

func (s Site) String() string {
	if !s.IsSet() {
		return "(unknown location)"
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}
