package iojson

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a JSON input named by a --file flag. The value "-"
// reads stdin, which must not be a terminal.
type FileReader[T any] struct {
	fileFlagValue string
	stdin         *os.File
}

// Flag returns the --file/-f flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "read matches from a JSON file (- for stdin)",
		Destination: &fr.fileFlagValue,
	}
}

// IsSet reports whether the flag was given.
func (fr *FileReader[T]) IsSet() bool {
	return fr.fileFlagValue != ""
}

// Read decodes the input.
func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	if fr.fileFlagValue != "-" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		stdin := fr.stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		if term.IsTerminal(int(stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); pipe JSON input or pass a file")
		}
		reader = stdin
	}

	return Decode[T](reader)
}
