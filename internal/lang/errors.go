package lang

import "errors"

// ErrUnsupportedLanguage is returned when no registered adapter claims a
// file extension or manifest name.
var ErrUnsupportedLanguage = errors.New("lang: no adapter for this file")

// ErrModuleNotFound is returned by LocateModuleFiles when no candidate
// resolution exists on disk.
var ErrModuleNotFound = errors.New("lang: module not found")
