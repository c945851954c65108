// Package filegateway lazily feeds a file's contents, one line at a
// time, from disk into the editor's piece table and line index. It
// never reads the whole file up front: callers pull as many lines as
// they currently need and can come back for more later, which keeps
// opening an arbitrarily large file cheap.
package filegateway

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnsupportedTarget is returned when the given path names something
// the gateway cannot open for editing, such as a directory.
var ErrUnsupportedTarget = errors.New("filegateway: unsupported target")

// Gateway is a lazy, forward-only reader over a single file. The zero
// value is not usable; construct one with Open.
type Gateway struct {
	file   *os.File
	reader *bufio.Reader
	eof    bool
}

// Open prepares path for reading. An empty path or a path that does not
// yet exist yields a Gateway that behaves as already at EOF, matching
// opening a new, unsaved buffer. A path naming a directory is rejected
// with ErrUnsupportedTarget.
func Open(path string) (*Gateway, error) {
	if path == "" {
		return &Gateway{eof: true}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Gateway{eof: true}, nil
		}
		return nil, fmt.Errorf("filegateway: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, ErrUnsupportedTarget
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filegateway: open %s: %w", path, err)
	}
	return &Gateway{file: f, reader: bufio.NewReader(f)}, nil
}

// EOF reports whether the gateway has reached the end of the file.
func (g *Gateway) EOF() bool { return g.eof }

// ReadLines reads up to n more lines, calling onLine once per line read
// with the raw bytes including the trailing newline, if present (the
// final line of a file need not end in one). It returns the number of
// lines actually delivered, which is less than n once EOF is reached.
func (g *Gateway) ReadLines(n int, onLine func(line []byte)) (int, error) {
	if n <= 0 || g.eof || g.reader == nil {
		if g.reader == nil {
			g.eof = true
		}
		return 0, nil
	}

	read := 0
	for i := 0; i < n; i++ {
		line, err := g.reader.ReadBytes('\n')
		if len(line) > 0 {
			onLine(line)
			read++
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				g.eof = true
				break
			}
			return read, fmt.Errorf("filegateway: read: %w", err)
		}
	}
	return read, nil
}

// ReadToEOF reads every remaining line.
func (g *Gateway) ReadToEOF(onLine func(line []byte)) error {
	for !g.eof {
		if _, err := g.ReadLines(1, onLine); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying file handle, if any.
func (g *Gateway) Close() error {
	if g.file == nil {
		return nil
	}
	return g.file.Close()
}
