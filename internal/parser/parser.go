package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/lanes/internal/game"
)

var (
	ErrMalformedChart = errors.New("malformed chart")
	ErrUnsupported    = errors.New("unsupported chart format")
)

type Parser interface {
	// Parse returns every playable chart found in file.
	Parse(file string) ([]*game.Chart, error)
}

// ForFile picks a parser from the file extension.
func ForFile(file string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return &JSONParser{}, nil
	case ".sm":
		return &StepManiaParser{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupported, file)
}
