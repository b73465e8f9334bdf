package main

import (
	"io"
	"os"
	"time"
)

// input is a source named on the command line: a file, or standard input
// for "-" or no argument.
type input struct {
	io.ReadCloser
	name    string
	size    int64 // -1 when unknown
	modTime time.Time
}

func openInput(args []string, stdin io.Reader) (*input, error) {
	if len(args) == 0 || args[0] == "-" {
		return &input{ReadCloser: io.NopCloser(stdin), size: -1}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &input{ReadCloser: f, name: fi.Name(), size: fi.Size(), modTime: fi.ModTime()}, nil
}
