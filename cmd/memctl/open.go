package main

import (
	"fmt"

	"github.com/codemix/malloc/arena"
	"github.com/codemix/malloc/pkg/malloc"
)

// openExisting maps an arena file for inspection. Unlike malloc.Open it
// refuses to format: a file without a valid header is reported, not
// overwritten.
func openExisting(path string) (*arena.File, *malloc.Allocator, error) {
	f, err := arena.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	if !arena.VerifyHeader(f.Bytes()) {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%s is not an arena file (no header block)", path)
	}

	m, err := malloc.New(f.Bytes())
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return f, m, nil
}
