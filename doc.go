// Package henkan converts Japanese readings (kana) into ranked conversion
// candidates for an input method.
//
// The engine looks the reading up in a LOUDS-trie dictionary, builds a
// lattice of every segmentation, finds the cheapest paths with a forward
// Viterbi pass followed by a backward A* search, and merges the result with
// auxiliary dictionaries (single kanji, emoji, emoticons, symbols, reading
// corrections, proverbs), numeral and date variants and the user's own
// dictionaries.
//
// # Quick Start
//
// Open a dictionary store produced by cmd/henkan-build:
//
//	ctx := context.Background()
//	e, _ := henkan.Open(ctx, blobstore.NewLocalStore("./dict"))
//	cs, _ := e.Candidates("きょうは", 10)
//	for _, c := range cs {
//	    fmt.Println(c.Text, c.Category, c.Score)
//	}
//
// Stores may live in S3 or MinIO:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("dict/"))
//	e, _ := henkan.Open(ctx, s3Store, henkan.WithBlobCache(64<<20))
//
// # Optional Dictionaries
//
// Person names, places, wiki, neologism and web dictionaries are loaded on
// demand and enabled per query:
//
//	_ = e.Load(ctx, henkan.PersonName)
//	cs, _ := e.Candidates("たなか", 10, henkan.WithOptionalDictionaries(henkan.PersonName))
//	e.Release(henkan.PersonName)
//
// # User and Learned Dictionaries
//
// Any userdict.Repository can be consulted per query:
//
//	user := userdict.NewMemory()
//	user.Add(userdict.Entry{Reading: "めあど", Surface: "me@example.com"})
//	cs, _ := e.Candidates("めあど", 5, henkan.WithUserDictionary(user))
package henkan
