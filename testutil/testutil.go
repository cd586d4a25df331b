package testutil

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/hupe1980/henkan/blobstore"
	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/internal/kana"
)

// syllables are the hiragana readings are generated from.
var syllables = []rune("あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほまみむめもやゆよらりるれろわんがぎぐげござじずぜぞだでどばびぶべぼぱぴぷぺぽょゅゃっー")

// kanji are the characters random surfaces are drawn from.
var kanji = []rune("日一国人年大十二本中長出三同時政事自行社見月分議後前民生連五発間対上部東者党地合市業内相方四定今回新場金員九入選立開手米力学問高代明実円関決子動京全目表戦経通外最言氏現理調体化田当八六約主題下首意法不来作性的要用制治度務強気小七成期公持野協取都和統以機平総加山思家話世受区領多県続進正安設保改数記院女初北午指権心界支第産結百派点教報済書府活原先共得解名交資予川向際査勝面委告軍文反元重近千考判認画海参売利組知案道信策集在件団別物側任引使求所次水半品昨論計死官増係感特情投示変打男基私各始島直両朝革価式確村提運終挙果西勢減台広容必応演電歳住争談能無再位置企真流格有疑口過局少放税検藤町常校料沢裁状工建語球営空職証土与急止送援供可役構木割聞身費付施切由説転食比難防補車優夫研収断井何南石足違消境神番規術護展態導鮮備宅害配副算視条幹独警宮究育席輸訪楽起万着乗店述残想線率病農州武声質念待試族象銀域助労例衛然早張映限親額監環験追審商葉義伝働形景落欧担好退準賞訴辺造英被株頭技低毎医復仕去姿味負閣韓渡失移差衆個門写評課末守若脳極種美岡影命含福蔵量望松非撃佐核観察整段横融型白深字答夜製票況音申様財港識注呼渉達")

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Reading returns a random hiragana string of minLen to maxLen runes.
func (r *RNG) Reading(minLen, maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readingLocked(minLen, maxLen)
}

func (r *RNG) readingLocked(minLen, maxLen int) string {
	n := minLen
	if maxLen > minLen {
		n += r.rand.Intn(maxLen - minLen + 1)
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = syllables[r.rand.Intn(len(syllables))]
	}
	return string(out)
}

// Readings returns n distinct random readings.
func (r *RNG) Readings(n, minLen, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		s := r.readingLocked(minLen, maxLen)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Words returns up to perReading random words for each reading. Surfaces
// are kanji strings or the katakana echo of the reading; costs fall in
// [500, 8500) and connection ids in [1, ids).
func (r *RNG) Words(readings []string, perReading, ids int) []dictionary.Word {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []dictionary.Word
	for _, reading := range readings {
		n := 1 + r.rand.Intn(perReading)
		seen := map[string]bool{}
		for range n {
			var surface string
			if r.rand.Intn(5) == 0 {
				surface = kana.ToKatakana(reading)
			} else {
				k := make([]rune, 1+r.rand.Intn(3))
				for i := range k {
					k[i] = kanji[r.rand.Intn(len(kanji))]
				}
				surface = string(k)
			}
			if seen[surface] {
				continue
			}
			seen[surface] = true
			id := int16(1 + r.rand.Intn(ids-1))
			out = append(out, dictionary.Word{
				Reading: reading,
				Surface: surface,
				LeftID:  id,
				RightID: id,
				Cost:    int16(500 + r.rand.Intn(8000)),
			})
		}
	}
	return out
}

// Matrix returns a random ids x ids connection matrix with costs in
// [0, 1000). Connections from and to id 0 cost nothing.
func (r *RNG) Matrix(ids int) *dictionary.Matrix {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := dictionary.NewMatrix(ids, ids)
	for right := 1; right < ids; right++ {
		for left := 1; left < ids; left++ {
			m.Set(right, left, int16(r.rand.Intn(1000)))
		}
	}
	return m
}

// Zipf returns a Zipf-distributed index in [0, n) with exponent s > 1.
// Lower indexes are more frequent, which models query popularity.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}
	// Inverse transform on the continuous approximation of the Zipf CDF.
	u := r.rand.Float64()
	a := 1 - s
	hi := math.Pow(float64(n), a)
	x := math.Pow(u*(hi-1)+1, 1/a)
	i := int(x) - 1
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}

// Fixture is a generated dictionary store.
type Fixture struct {
	Store    *blobstore.MemoryStore
	Readings []string
	Words    []dictionary.Word
}

// FixtureConfig sizes a generated store.
type FixtureConfig struct {
	Readings   int
	PerReading int
	IDs        int
	// Optional names additional dictionaries holding a slice of the words.
	Optional []string
	Options  dictionary.SaveOptions
}

// NewFixture writes a system dictionary, the named optional dictionaries,
// the POS table and a connection matrix to a memory store.
func NewFixture(tb testing.TB, rng *RNG, cfg FixtureConfig) *Fixture {
	tb.Helper()
	if cfg.IDs < 2 {
		cfg.IDs = 16
	}
	if cfg.PerReading < 1 {
		cfg.PerReading = 3
	}
	ctx := context.Background()

	readings := rng.Readings(cfg.Readings, 1, 5)
	words := rng.Words(readings, cfg.PerReading, cfg.IDs)
	pos := dictionary.NewPOSTable()
	store := blobstore.NewMemoryStore()

	save := func(name string, ws []dictionary.Word) {
		b := dictionary.NewBuilder(name, pos)
		if err := b.AddAll(ws); err != nil {
			tb.Fatal(err)
		}
		d, err := b.Build()
		if err != nil {
			tb.Fatal(err)
		}
		if err := dictionary.Save(ctx, store, d, cfg.Options); err != nil {
			tb.Fatal(err)
		}
	}

	save("system", words)
	for i, name := range cfg.Optional {
		var ws []dictionary.Word
		for j := i; j < len(words); j += len(cfg.Optional) + 1 {
			ws = append(ws, words[j])
		}
		if len(ws) == 0 {
			ws = words[:1]
		}
		save(name, ws)
	}
	if err := dictionary.SavePOS(ctx, store, pos, cfg.Options); err != nil {
		tb.Fatal(err)
	}
	if err := dictionary.SaveMatrix(ctx, store, rng.Matrix(cfg.IDs), cfg.Options); err != nil {
		tb.Fatal(err)
	}
	return &Fixture{Store: store, Readings: readings, Words: words}
}

// Sentence joins count random fixture readings into one input.
func (f *Fixture) Sentence(rng *RNG, count int) string {
	var s []byte
	for range count {
		s = append(s, f.Readings[rng.Zipf(len(f.Readings), 1.2)]...)
	}
	return string(s)
}
