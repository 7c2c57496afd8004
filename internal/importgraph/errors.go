package importgraph

import "errors"

// ErrFileNotFound indicates a query referenced a file Build never saw.
var ErrFileNotFound = errors.New("importgraph: file not found")
