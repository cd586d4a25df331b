package henkan

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/hupe1980/henkan/blobstore"
	"github.com/hupe1980/henkan/candidate"
	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/internal/assembler"
	"github.com/hupe1980/henkan/internal/resource"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Names of the mandatory dictionaries in a store.
const (
	SystemDictionary            = "system"
	SingleKanjiDictionary       = "single_kanji"
	EmojiDictionary             = "emoji"
	EmoticonDictionary          = "emoticon"
	SymbolDictionary            = "symbol"
	ReadingCorrectionDictionary = "reading_correction"
	ProverbDictionary           = "proverb"
)

// OptionalDictionary identifies a dictionary that is loaded on demand.
type OptionalDictionary int

const (
	PersonName OptionalDictionary = iota
	Place
	Wiki
	Neologism
	Web

	numOptional = iota
)

var optionalNames = [numOptional]string{
	PersonName: "person_name",
	Place:      "place",
	Wiki:       "wiki",
	Neologism:  "neologism",
	Web:        "web",
}

// String returns the store name of d.
func (d OptionalDictionary) String() string {
	if d.valid() {
		return optionalNames[d]
	}
	return fmt.Sprintf("OptionalDictionary(%d)", int(d))
}

func (d OptionalDictionary) valid() bool { return d >= 0 && int(d) < numOptional }

// OptionalDictionaries returns every optional dictionary.
func OptionalDictionaries() []OptionalDictionary {
	return []OptionalDictionary{PersonName, Place, Wiki, Neologism, Web}
}

// ParseOptionalDictionary maps a store name such as "person_name" to its
// OptionalDictionary.
func ParseOptionalDictionary(name string) (OptionalDictionary, error) {
	for i, n := range optionalNames {
		if n == name {
			return OptionalDictionary(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDictionary, name)
}

// Components are pre-built mandatory dictionaries.
type Components struct {
	Matrix *dictionary.Matrix
	// System is required; the auxiliary dictionaries may be nil.
	System            *dictionary.Dictionary
	SingleKanji       *dictionary.Dictionary
	Emoji             *dictionary.Dictionary
	Emoticon          *dictionary.Dictionary
	Symbol            *dictionary.Dictionary
	ReadingCorrection *dictionary.Dictionary
	Proverb           *dictionary.Dictionary

	// Store and POS are used to load optional dictionaries. Without a
	// store Load returns ErrNotLoaded.
	Store blobstore.Store
	POS   *dictionary.POSTable
}

// optionalSlot holds a loaded optional dictionary or nil.
type optionalSlot struct {
	dict atomic.Pointer[dictionary.Dictionary]
}

// Engine converts readings into ranked candidates.
//
// Candidates is safe for unlimited concurrent use. Load and Release may run
// concurrently with queries; a query keeps the dictionaries it started with.
type Engine struct {
	asm      *assembler.Assembler
	store    blobstore.Store
	pos      *dictionary.POSTable
	layout   dictionary.Layout
	optional [numOptional]optionalSlot
	loads    singleflight.Group
	rc       *resource.Controller
	clock    func() time.Time
	logger   *Logger
	metrics  MetricsCollector
}

// New creates an Engine from pre-built dictionaries.
func New(c Components, optFns ...Option) (*Engine, error) {
	if c.System == nil || c.Matrix == nil {
		return nil, ErrMissingSystem
	}
	opts := applyOptions(optFns)
	rc := resource.NewController(opts.resource)
	var store blobstore.Store
	if c.Store != nil {
		store = wrapStore(c.Store, rc, opts)
	}
	return newEngine(c, opts, rc, store), nil
}

func newEngine(c Components, opts options, rc *resource.Controller, store blobstore.Store) *Engine {
	pos := c.POS
	if pos == nil {
		pos = c.System.POS()
	}
	return &Engine{
		asm: assembler.New(assembler.Dictionaries{
			System:            c.System,
			SingleKanji:       c.SingleKanji,
			Emoji:             c.Emoji,
			Emoticon:          c.Emoticon,
			Symbol:            c.Symbol,
			ReadingCorrection: c.ReadingCorrection,
			Proverb:           c.Proverb,
		}, c.Matrix, opts.scoring),
		store:   store,
		pos:     pos,
		layout:  opts.layout,
		rc:      rc,
		clock:   opts.clock,
		logger:  opts.logger,
		metrics: opts.metrics,
	}
}

// wrapStore adds IO throttling and the optional blob cache.
func wrapStore(s blobstore.Store, rc *resource.Controller, opts options) blobstore.Store {
	var out blobstore.Store = blobstore.NewThrottledStore(s, rc)
	if opts.cacheBytes > 0 {
		out = blobstore.NewCachingStore(out, opts.cacheBytes, rc)
	}
	return out
}

// Open loads the connection matrix, the POS table and the mandatory
// dictionaries from store using the configured layout.
//
// A failing system dictionary, matrix or POS table fails Open. A failing
// auxiliary dictionary is logged and left absent.
func Open(ctx context.Context, store blobstore.Store, optFns ...Option) (*Engine, error) {
	start := time.Now()
	opts := applyOptions(optFns)
	rc := resource.NewController(opts.resource)
	src := wrapStore(store, rc, opts)

	var c Components
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Matrix, err = dictionary.LoadMatrix(gctx, src, opts.layout)
		return loadError(opts.layout.Connection, err)
	})
	g.Go(func() (err error) {
		c.POS, err = dictionary.LoadPOS(gctx, src, opts.layout)
		return loadError(opts.layout.POS, err)
	})
	if err := g.Wait(); err != nil {
		opts.logger.LogOpen(ctx, 0, time.Since(start), err)
		return nil, err
	}

	mandatory := []struct {
		name string
		dst  **dictionary.Dictionary
	}{
		{SystemDictionary, &c.System},
		{SingleKanjiDictionary, &c.SingleKanji},
		{EmojiDictionary, &c.Emoji},
		{EmoticonDictionary, &c.Emoticon},
		{SymbolDictionary, &c.Symbol},
		{ReadingCorrectionDictionary, &c.ReadingCorrection},
		{ProverbDictionary, &c.Proverb},
	}

	var loaded atomic.Int64
	g, gctx = errgroup.WithContext(ctx)
	for _, m := range mandatory {
		g.Go(func() error {
			if err := rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer rc.ReleaseWorker()

			t := time.Now()
			d, err := dictionary.Load(gctx, src, m.name, c.POS, opts.layout)
			opts.metrics.RecordLoad(m.name, time.Since(t), err)
			if err != nil {
				if m.name == SystemDictionary {
					return loadError(m.name, err)
				}
				opts.logger.LogDictionarySkipped(gctx, m.name, err)
				return nil
			}
			opts.logger.LogDictionaryLoad(gctx, m.name, d.Size(), time.Since(t), nil)
			*m.dst = d
			loaded.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		opts.logger.LogOpen(ctx, 0, time.Since(start), err)
		return nil, err
	}

	e := newEngine(c, opts, rc, src)
	opts.logger.LogOpen(ctx, int(loaded.Load()), time.Since(start), nil)
	return e, nil
}

// Load loads an optional dictionary. Loading an already loaded dictionary is
// a no-op and concurrent loads of the same dictionary are coalesced.
func (e *Engine) Load(ctx context.Context, d OptionalDictionary) error {
	if !d.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDictionary, int(d))
	}
	slot := &e.optional[d]
	if slot.dict.Load() != nil {
		return nil
	}
	if e.store == nil {
		return fmt.Errorf("%w: %s: no store", ErrNotLoaded, d)
	}

	name := d.String()
	_, err, _ := e.loads.Do(name, func() (any, error) {
		if slot.dict.Load() != nil {
			return nil, nil
		}
		start := time.Now()
		dict, err := e.loadOptional(ctx, name)
		e.metrics.RecordLoad(name, time.Since(start), err)
		if err != nil {
			e.logger.LogDictionaryLoad(ctx, name, 0, time.Since(start), err)
			return nil, err
		}
		slot.dict.Store(dict)
		e.logger.LogDictionaryLoad(ctx, name, dict.Size(), time.Since(start), nil)
		return nil, nil
	})
	return err
}

func (e *Engine) loadOptional(ctx context.Context, name string) (*dictionary.Dictionary, error) {
	if err := e.rc.AcquireWorker(ctx); err != nil {
		return nil, err
	}
	defer e.rc.ReleaseWorker()

	dict, err := dictionary.Load(ctx, e.store, name, e.pos, e.layout)
	if err != nil {
		return nil, loadError(name, err)
	}
	if err := e.rc.AcquireMemory(dict.Size()); err != nil {
		return nil, loadError(name, err)
	}
	return dict, nil
}

// Release drops an optional dictionary. Releasing a dictionary that is not
// loaded is a no-op. Queries already running keep using it.
func (e *Engine) Release(d OptionalDictionary) {
	if !d.valid() {
		return
	}
	old := e.optional[d].dict.Swap(nil)
	if old == nil {
		return
	}
	e.rc.ReleaseMemory(old.Size())
	e.metrics.RecordRelease(d.String())
	e.logger.LogDictionaryRelease(context.Background(), d.String(), old.Size())
}

// IsLoaded reports whether an optional dictionary is loaded.
func (e *Engine) IsLoaded(d OptionalDictionary) bool {
	return d.valid() && e.optional[d].dict.Load() != nil
}

// MemoryUsage returns the bytes reserved by loaded optional dictionaries
// and cached blobs.
func (e *Engine) MemoryUsage() int64 { return e.rc.MemoryUsage() }

// Candidates converts input into at most n primary conversions merged with
// the auxiliary candidates, in display order and without duplicate texts.
func (e *Engine) Candidates(input string, n int, optFns ...QueryOption) ([]candidate.Candidate, error) {
	if n < 1 {
		return nil, ErrInvalidN
	}
	start := time.Now()
	q := applyQueryOptions(optFns)

	var optional []*dictionary.Dictionary
	for _, d := range q.optional {
		if !d.valid() {
			continue
		}
		if dict := e.optional[d].dict.Load(); dict != nil {
			optional = append(optional, dict)
		}
	}

	cs := e.asm.Assemble(assembler.Request{
		Input:    input,
		N:        n,
		User:     q.user,
		Learned:  q.learned,
		Optional: optional,
		Now:      e.clock(),
	})
	cs = candidate.Dedupe(cs)

	d := time.Since(start)
	e.metrics.RecordConvert(utf8.RuneCountInString(input), len(cs), d)
	e.logger.LogConvert(context.Background(), input, n, len(cs), d)
	return cs, nil
}

// IsDictionaryLoadError reports whether err came from a failed dictionary
// load and returns the dictionary name.
func IsDictionaryLoadError(err error) (string, bool) {
	var le *DictionaryLoadError
	if errors.As(err, &le) {
		return le.Name, true
	}
	return "", false
}
