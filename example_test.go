package henkan_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/henkan"
	"github.com/hupe1980/henkan/blobstore"
	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/userdict"
)

// exampleStore builds a tiny dictionary store in memory.
func exampleStore() blobstore.Store {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	b := dictionary.NewBuilder(henkan.SystemDictionary, nil)
	if err := b.AddAll([]dictionary.Word{
		{Reading: "きょう", Surface: "今日", LeftID: 1, RightID: 1, Cost: 3000},
		{Reading: "は", Surface: "は", LeftID: 2, RightID: 2, Cost: 400},
		{Reading: "はれ", Surface: "晴れ", LeftID: 1, RightID: 1, Cost: 3500},
	}); err != nil {
		log.Fatal(err)
	}
	system, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	matrix := dictionary.NewMatrix(3, 3)
	matrix.Set(1, 2, 100)
	matrix.Set(2, 1, 50)

	opts := dictionary.SaveOptions{Compression: dictionary.CompressionZstd}
	if err := dictionary.Save(ctx, store, system, opts); err != nil {
		log.Fatal(err)
	}
	if err := dictionary.SavePOS(ctx, store, system.POS(), opts); err != nil {
		log.Fatal(err)
	}
	if err := dictionary.SaveMatrix(ctx, store, matrix, opts); err != nil {
		log.Fatal(err)
	}
	return store
}

// Example_open demonstrates opening a store and converting a reading.
func Example_open() {
	e, err := henkan.Open(context.Background(), exampleStore())
	if err != nil {
		log.Fatal(err)
	}

	cs, err := e.Candidates("きょうははれ", 1)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(cs[0].Text, cs[0].Score)
	// Output: 今日は晴れ 7050
}

// Example_userDictionary demonstrates consulting a user dictionary.
func Example_userDictionary() {
	e, err := henkan.Open(context.Background(), exampleStore())
	if err != nil {
		log.Fatal(err)
	}

	user := userdict.NewMemory()
	user.Add(userdict.Entry{Reading: "はれ", Surface: "晴天", LeftID: 1, RightID: 1, Cost: 100})

	cs, err := e.Candidates("はれ", 1, henkan.WithUserDictionary(user))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(cs[0].Text, cs[0].Category)
	// Output: 晴天 kanji
}

// Example_dates demonstrates date candidates computed from an injected clock.
func Example_dates() {
	now := func() time.Time { return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC) }
	e, err := henkan.Open(context.Background(), exampleStore(), henkan.WithClock(now))
	if err != nil {
		log.Fatal(err)
	}

	cs, err := e.Candidates("あした", 1)
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range cs {
		if c.Category.String() == "date" {
			fmt.Println(c.Text)
		}
	}
	// Output:
	// 2025/01/02
	// 2025年1月2日
	// 1月2日
	// 令和7年1月2日
	// 木曜日
}
