package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/henkan"
	"github.com/hupe1980/henkan/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRun(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "dict")

	writeFile(t, srcDir, "connection.txt", "3 3\n1 2 100\n2 1 50\n")
	writeFile(t, srcDir, "system.tsv", "# reading\tleft\tright\tcost\tsurface\n"+
		"きょう\t1\t1\t3000\t今日\n"+
		"は\t2\t2\t400\tは\n"+
		"はれ\t1\t1\t3500\t晴れ\n")
	writeFile(t, srcDir, "emoji.tsv", "はれ\t1\t1\t1000\t☀\n")

	*src, *out, *compression, *zipped = srcDir, outDir, "lz4", true
	require.NoError(t, run(context.Background()))

	_, err := os.Stat(filepath.Join(outDir, "system", "token.bin.zip"))
	require.NoError(t, err)

	e, err := henkan.Open(context.Background(), blobstore.NewLocalStore(outDir))
	require.NoError(t, err)

	cs, err := e.Candidates("きょうははれ", 1)
	require.NoError(t, err)
	assert.Equal(t, "今日は晴れ", cs[0].Text)

	cs, err = e.Candidates("はれ", 1)
	require.NoError(t, err)
	var texts []string
	for _, c := range cs {
		texts = append(texts, c.Text)
	}
	assert.Contains(t, texts, "☀")
}

func TestRun_MissingSystem(t *testing.T) {
	srcDir := t.TempDir()
	writeFile(t, srcDir, "connection.txt", "1 1\n")
	writeFile(t, srcDir, "emoji.tsv", "はれ\t0\t0\t1000\t☀\n")

	*src, *out, *compression, *zipped = srcDir, t.TempDir(), "none", false
	assert.ErrorContains(t, run(context.Background()), "system.tsv")
}

func TestRun_BadCompression(t *testing.T) {
	*src, *out, *compression = t.TempDir(), t.TempDir(), "brotli"
	assert.Error(t, run(context.Background()))
}
