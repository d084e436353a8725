package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opdss/addressbook/storage"
)

func bytesReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func newLocal(t *testing.T) *storage.Local {
	t.Helper()
	fs, err := storage.NewLocal(storage.LocalConfig{Root: t.TempDir(), Endpoint: "file://"})
	require.NoError(t, err)
	return fs
}

func TestCsvMissingFileIsEmpty(t *testing.T) {
	repo := NewCsv(zap.NewNop(), newLocal(t), "book.csv")
	book, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, book.Len())
}

func TestCsvEmptyFile(t *testing.T) {
	ctx := context.Background()
	fs := newLocal(t)
	require.NoError(t, fs.PutStream(ctx, "book.csv", bytesReader("")))
	book, err := NewCsv(zap.NewNop(), fs, "book.csv").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, book.Len())
}

func TestCsvRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := newLocal(t)
	const content = "Name,Phone\nNicholas,(420)798-1076\nBarry,(580)776-2009\nNicholas,(347)725-4471\n"
	require.NoError(t, fs.PutStream(ctx, "book.csv", bytesReader(content)))

	repo := NewCsv(zap.NewNop(), fs, "book.csv")
	book, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, book.Len())

	require.NoError(t, book.Add("Alice", "(111)111-1111"))
	require.NoError(t, repo.Save(ctx, book))

	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Len())
	c, ok := again.Find("Nicholas")
	require.True(t, ok)
	assert.Equal(t, []string{"(420)798-1076", "(347)725-4471"}, c.Numbers().Slice())
}

func TestCsvRejectsBinary(t *testing.T) {
	ctx := context.Background()
	fs := newLocal(t)
	require.NoError(t, fs.PutStream(ctx, "book.csv", bytesReader("PK\x03\x04\x00\x00\x00\x00binary")))

	_, err := NewCsv(zap.NewNop(), fs, "book.csv").Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotText)
	assert.True(t, Error.Has(err))
}
