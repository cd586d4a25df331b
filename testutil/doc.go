// Package testutil provides testing utilities for henkan.
//
// This package is intended for use in tests and benchmarks only.
// It generates random readings, dictionaries and connection matrices and
// writes them to in-memory stores.
//
// # Random Dictionaries
//
//	rng := testutil.NewRNG(seed)
//	f := testutil.NewFixture(t, rng, testutil.FixtureConfig{Readings: 1000})
//	e, _ := henkan.Open(ctx, f.Store)
//	cs, _ := e.Candidates(f.Sentence(rng, 3), 5)
package testutil
