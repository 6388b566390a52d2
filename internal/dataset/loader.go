package dataset

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
)

// Loader reads score files through an injected filesystem. Production code
// passes afero.NewOsFs(); tests pass an afero.MemMapFs.
type Loader struct {
	fs afero.Fs
}

// NewLoader returns a Loader over the given filesystem.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// Load reads the named file once and returns its full text content with any
// UTF-8 BOM stripped. There is no retry and no watching; a failed load is
// terminal for the activation.
func (l *Loader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", eris.Wrap(err, "loader: context cancelled")
	}

	raw, err := l.LoadBytes(ctx, name)
	if err != nil {
		return "", err
	}

	text, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return "", eris.Wrapf(err, "loader: decode %s", name)
	}
	return string(text), nil
}

// LoadBytes reads the named file once and returns its raw bytes. Used for
// binary formats (xlsx) where BOM handling does not apply.
func (l *Loader) LoadBytes(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "loader: context cancelled")
	}

	raw, err := afero.ReadFile(l.fs, name)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read %s", name)
	}
	return raw, nil
}
