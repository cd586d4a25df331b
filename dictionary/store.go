package dictionary

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/hupe1980/henkan/blobstore"
	"github.com/hupe1980/henkan/internal/compress"
	"github.com/hupe1980/henkan/internal/connection"
	"github.com/hupe1980/henkan/internal/format"
	"github.com/hupe1980/henkan/internal/louds"
	"github.com/hupe1980/henkan/internal/token"
	"golang.org/x/sync/errgroup"
)

// ErrCorruptArtifact is returned when an artifact decodes but its contents
// are inconsistent.
var ErrCorruptArtifact = errors.New("dictionary: corrupt artifact")

// Layout names the files of a dictionary store.
type Layout struct {
	Connection string
	POS        string
	Reading    string
	Word       string
	Tokens     string
}

// DefaultLayout returns the standard store layout:
//
//	connection.bin
//	pos.bin
//	<name>/reading.bin
//	<name>/word.bin
//	<name>/token.bin
//
// Any file may instead be stored as "<file>.zip" holding one entry named
// after the file.
func DefaultLayout() Layout {
	return Layout{
		Connection: "connection.bin",
		POS:        "pos.bin",
		Reading:    "reading.bin",
		Word:       "word.bin",
		Tokens:     "token.bin",
	}
}

// Compression selects the payload codec of written artifacts.
type Compression = compress.Type

const (
	CompressionNone = compress.None
	CompressionLZ4  = compress.LZ4
	CompressionZstd = compress.Zstd
)

// ParseCompression maps "none", "lz4" or "zstd" to a Compression.
func ParseCompression(name string) (Compression, error) { return compress.ParseType(name) }

// SaveOptions controls how artifacts are written.
type SaveOptions struct {
	Layout      Layout
	Compression Compression
	// Zip wraps every artifact in a single-entry zip archive.
	Zip bool
}

func (o SaveOptions) layout() Layout {
	if o.Layout == (Layout{}) {
		return DefaultLayout()
	}
	return o.Layout
}

type artifacts struct {
	reading, word, tokens []byte
}

func encode(d *Dictionary) (artifacts, error) {
	var a artifacts
	var err error
	if a.reading, err = d.Reading.MarshalBinary(); err != nil {
		return a, err
	}
	if a.word, err = d.Word.MarshalBinary(); err != nil {
		return a, err
	}
	if a.tokens, err = d.Tokens.MarshalBinary(); err != nil {
		return a, err
	}
	return a, nil
}

func writeArtifact(ctx context.Context, w blobstore.Writer, name string, kind format.Kind, raw []byte, opts SaveOptions) error {
	data, err := format.Encode(kind, raw, opts.Compression)
	if err != nil {
		return err
	}
	if opts.Zip {
		if data, err = format.Zip(path.Base(name), data); err != nil {
			return err
		}
		name += ".zip"
	}
	if err := w.Put(ctx, name, data); err != nil {
		return fmt.Errorf("dictionary: write %s: %w", name, err)
	}
	return nil
}

// Save writes the three artifacts of d below d.Name.
func Save(ctx context.Context, w blobstore.Writer, d *Dictionary, opts SaveOptions) error {
	a, err := encode(d)
	if err != nil {
		return err
	}
	l := opts.layout()
	files := []struct {
		name string
		kind format.Kind
		raw  []byte
	}{
		{path.Join(d.Name, l.Reading), format.KindReadingTrie, a.reading},
		{path.Join(d.Name, l.Word), format.KindWordTrie, a.word},
		{path.Join(d.Name, l.Tokens), format.KindTokens, a.tokens},
	}
	for _, f := range files {
		if err := writeArtifact(ctx, w, f.name, f.kind, f.raw, opts); err != nil {
			return err
		}
	}
	return nil
}

// SavePOS writes the shared POS table.
func SavePOS(ctx context.Context, w blobstore.Writer, pos *POSTable, opts SaveOptions) error {
	raw, err := pos.MarshalBinary()
	if err != nil {
		return err
	}
	return writeArtifact(ctx, w, opts.layout().POS, format.KindPOS, raw, opts)
}

// SaveMatrix writes the connection matrix.
func SaveMatrix(ctx context.Context, w blobstore.Writer, m *Matrix, opts SaveOptions) error {
	raw, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	return writeArtifact(ctx, w, opts.layout().Connection, format.KindConnection, raw, opts)
}

// readArtifact reads name, falling back to name.zip, and strips the envelope.
func readArtifact(ctx context.Context, s blobstore.Store, name string, kind format.Kind) ([]byte, error) {
	data, err := blobstore.ReadAll(ctx, s, name)
	if errors.Is(err, blobstore.ErrNotFound) {
		zipped, zerr := blobstore.ReadAll(ctx, s, name+".zip")
		if zerr != nil {
			if errors.Is(zerr, blobstore.ErrNotFound) {
				return nil, err
			}
			return nil, zerr
		}
		data, err = format.Unzip(zipped, path.Base(name))
	}
	if err != nil {
		return nil, err
	}
	return format.Decode(data, kind)
}

// LoadPOS reads the shared POS table.
func LoadPOS(ctx context.Context, s blobstore.Store, l Layout) (*POSTable, error) {
	raw, err := readArtifact(ctx, s, l.POS, format.KindPOS)
	if err != nil {
		return nil, err
	}
	pos, err := token.UnmarshalPOSTable(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptArtifact, l.POS, err)
	}
	return pos, nil
}

// LoadMatrix reads the connection matrix.
func LoadMatrix(ctx context.Context, s blobstore.Store, l Layout) (*Matrix, error) {
	raw, err := readArtifact(ctx, s, l.Connection, format.KindConnection)
	if err != nil {
		return nil, err
	}
	m, err := connection.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptArtifact, l.Connection, err)
	}
	return m, nil
}

// Load reads the dictionary name. The three artifacts are fetched concurrently.
func Load(ctx context.Context, s blobstore.Store, name string, pos *POSTable, l Layout) (*Dictionary, error) {
	var raw artifacts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		raw.reading, err = readArtifact(gctx, s, path.Join(name, l.Reading), format.KindReadingTrie)
		return err
	})
	g.Go(func() (err error) {
		raw.word, err = readArtifact(gctx, s, path.Join(name, l.Word), format.KindWordTrie)
		return err
	})
	g.Go(func() (err error) {
		raw.tokens, err = readArtifact(gctx, s, path.Join(name, l.Tokens), format.KindTokens)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decode(name, raw, pos)
}

func decode(name string, raw artifacts, pos *POSTable) (*Dictionary, error) {
	reading, err := louds.Unmarshal(raw.reading)
	if err != nil {
		return nil, fmt.Errorf("%w: %s reading trie: %w", ErrCorruptArtifact, name, err)
	}
	word, err := louds.Unmarshal(raw.word)
	if err != nil {
		return nil, fmt.Errorf("%w: %s word trie: %w", ErrCorruptArtifact, name, err)
	}
	tokens, err := token.Unmarshal(raw.tokens, pos)
	if err != nil {
		return nil, fmt.Errorf("%w: %s tokens: %w", ErrCorruptArtifact, name, err)
	}
	if tokens.NumTerms() != reading.NumTerms() {
		return nil, fmt.Errorf("%w: %s: %d token ranges for %d readings",
			ErrCorruptArtifact, name, tokens.NumTerms(), reading.NumTerms())
	}
	for i := range tokens.Len() {
		t := tokens.At(i)
		if t.Output.Kind == token.OutputLiteral && int(t.Output.Node) >= word.NumNodes() {
			return nil, fmt.Errorf("%w: %s: token %d refers to word node %d of %d",
				ErrCorruptArtifact, name, i, t.Output.Node, word.NumNodes())
		}
	}
	return &Dictionary{
		Name:    name,
		Reading: reading,
		Word:    word,
		Tokens:  tokens,
		size:    int64(len(raw.reading) + len(raw.word) + len(raw.tokens)),
	}, nil
}
