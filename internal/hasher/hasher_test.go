package hasher

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestHashFileKnownVectors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty", nil)
	hello := writeFile(t, dir, "hello", []byte("hello"))

	cases := []struct {
		path string
		algo Algorithm
		want string
	}{
		{empty, Blake3, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
		{empty, XXH64, "ef46db3751d8e999"},
		{hello, SHA256, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}
	for _, tc := range cases {
		got, stats, err := HashFile(tc.path, tc.algo)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s", tc.algo, filepath.Base(tc.path))
		assert.Len(t, got, tc.algo.HexLen())
		assert.Equal(t, int64(len(mustRead(t, tc.path))), stats.Size)
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// Archivos más grandes que un bloque: el streaming debe dar el mismo digest
// que hashear todo en memoria.
func TestHashFileStreamsLargeFiles(t *testing.T) {
	dir := t.TempDir()
	data := bytes.Repeat([]byte("0123456789abcdef"), 10_000) // 160KB, no múltiplo de 8KB
	data = append(data, []byte("tail")...)
	path := writeFile(t, dir, "large.bin", data)

	b3 := blake3.Sum256(data)
	sha := sha256.Sum256(data)
	expected := map[Algorithm]string{
		Blake3: hex.EncodeToString(b3[:]),
		SHA256: hex.EncodeToString(sha[:]),
		XXH64:  fmt.Sprintf("%016x", xxhash.Sum64(data)),
	}

	for algo, want := range expected {
		got, stats, err := HashFile(path, algo)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(algo))
		assert.Equal(t, int64(len(data)), stats.Size)
		assert.WithinDuration(t, time.Now(), stats.ModTime, time.Hour)
	}
}

func TestHashFilePoolIsReset(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", []byte("same content"))
	b := writeFile(t, dir, "b", []byte("same content"))

	ha, _, err := HashFile(a, Blake3)
	require.NoError(t, err)
	hb, _, err := HashFile(b, Blake3)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestHashFileErrors(t *testing.T) {
	_, _, err := HashFile(filepath.Join(t.TempDir(), "missing"), Blake3)
	assert.ErrorIs(t, err, ErrRead)

	path := writeFile(t, t.TempDir(), "x", []byte("x"))
	_, _, err = HashFile(path, Algorithm("md4"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestHashFirstBlock(t *testing.T) {
	dir := t.TempDir()
	prefix := bytes.Repeat([]byte{'p'}, PreHashSize)
	a := writeFile(t, dir, "a", append(append([]byte{}, prefix...), 'A'))
	b := writeFile(t, dir, "b", append(append([]byte{}, prefix...), 'B'))
	c := writeFile(t, dir, "c", []byte("short"))

	ha, err := HashFirstBlock(a)
	require.NoError(t, err)
	hb, err := HashFirstBlock(b)
	require.NoError(t, err)
	hc, err := HashFirstBlock(c)
	require.NoError(t, err)

	assert.Equal(t, ha, hb, "solo cuenta el primer bloque")
	assert.NotEqual(t, ha, hc)
	assert.Equal(t, xxhash.Sum64([]byte("short")), hc)

	_, err = HashFirstBlock(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrRead)
}

func TestParseAlgorithm(t *testing.T) {
	algo, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, Blake3, algo)

	algo, err = ParseAlgorithm(" SHA256 ")
	require.NoError(t, err)
	assert.Equal(t, SHA256, algo)

	_, err = ParseAlgorithm("md5")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}
