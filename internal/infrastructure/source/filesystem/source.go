package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ft5-league/internal/usecase"
)

var errUnknownDocument = crerr.New("no file configured for document")

// Source reads the league documents from a local directory. It implements
// usecase.DocumentSource.
type Source struct {
	dir   string
	files map[usecase.Document]string
}

// DefaultFiles are the file names the league publishes its documents under.
func DefaultFiles() map[usecase.Document]string {
	return map[usecase.Document]string{
		usecase.DocumentPlayers:   "jugadores.json",
		usecase.DocumentCalendar:  "calendario.json",
		usecase.DocumentStandings: "clasificacion_ordenada.json",
	}
}

// NewSource resolves files relative to dir. Missing entries fall back to DefaultFiles.
func NewSource(dir string, files map[usecase.Document]string) *Source {
	resolved := DefaultFiles()
	for doc, name := range files {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			resolved[doc] = trimmed
		}
	}
	return &Source{
		dir:   strings.TrimSpace(dir),
		files: resolved,
	}
}

func (s *Source) Fetch(ctx context.Context, doc usecase.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.Path(doc)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", doc)
	}
	return raw, nil
}

// Path returns the file backing doc. Absolute file names ignore the directory.
func (s *Source) Path(doc usecase.Document) (string, error) {
	name, ok := s.files[doc]
	if !ok {
		return "", crerr.Wrapf(errUnknownDocument, "document %s", doc)
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join(s.dir, name), nil
}
