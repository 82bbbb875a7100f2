package source

import "io"

// Writer is a byte sink pages are written to.
type Writer interface {
	io.Writer
	io.Closer
}
