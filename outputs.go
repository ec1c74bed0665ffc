package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
)

// outputBufferSize is the write buffer in front of each image file.
const outputBufferSize = 1 << 20

// outputFile is a buffered image file. Close flushes and closes it once;
// later calls return the first result.
type outputFile struct {
	path string
	file *os.File
	*bufio.Writer

	once   sync.Once
	closed bool
	err    error
}

func createOutput(path string) (*outputFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &outputFile{
		path:   path,
		file:   f,
		Writer: bufio.NewWriterSize(f, outputBufferSize),
	}, nil
}

func (o *outputFile) Close() error {
	o.once.Do(func() {
		o.closed = true
		flushErr := o.Flush()
		closeErr := o.file.Close()
		switch {
		case flushErr != nil:
			o.err = fmt.Errorf("flush %s: %w", o.path, flushErr)
		case closeErr != nil:
			o.err = fmt.Errorf("close %s: %w", o.path, closeErr)
		}
	})
	return o.err
}

// flush writes out any buffered rows of a file that is still open.
func (o *outputFile) flush(context.Context) error {
	if o.closed {
		return nil
	}
	if err := o.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", o.path, err)
	}
	return nil
}

// close adapts Close to the cleanup registry.
func (o *outputFile) close(context.Context) error {
	return o.Close()
}
