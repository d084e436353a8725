package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/opdss/addressbook/iterator"
	storage "github.com/opdss/addressbook/storage"
)

type phoneRow struct {
	Name  string `export:"name"`
	Phone string `export:"phone"`
	Note  string
}

var phoneHeaders = Headers{
	{Field: "name", Title: "Name"},
	{Field: "phone", Title: "Phone"},
}

func rows() DataProvider {
	return iterator.NewSliceIterator([]any{
		phoneRow{Name: "Barry", Phone: "(580)776-2009"},
		&phoneRow{Name: "Nicholas", Phone: "(420)798-1076"},
		map[string]any{"name": "Ann, Jr", "phone": 5551234},
		[]string{"Zed"},
	})
}

func TestCsvExportTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := ToCsvStream(context.Background(), phoneHeaders, rows(), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "Name,Phone\n"+
		"Barry,(580)776-2009\n"+
		"Nicholas,(420)798-1076\n"+
		"\"Ann, Jr\",5551234\n"+
		"Zed,\n", buf.String())
}

func TestCsvCellRender(t *testing.T) {
	h := Headers{
		{Field: "name", Title: "Name", CellRender: func(rowData any, val any, row int, col int) any {
			return strings.ToUpper(val.(string))
		}},
		{Field: "missing", Title: "Missing", CellRender: func(rowData any, val any, row int, col int) any {
			return row*10 + col
		}},
	}
	var buf bytes.Buffer
	_, err := ToCsvStream(context.Background(), h, iterator.NewSliceIterator([]any{phoneRow{Name: "barry"}}), &buf)
	require.NoError(t, err)
	assert.Equal(t, "Name,Missing\nBARRY,22\n", buf.String())
}

func TestCsvMaxRows(t *testing.T) {
	var buf bytes.Buffer
	_, err := ToCsvStream(context.Background(), phoneHeaders, rows(), &buf, WithMaxRows(1))
	assert.ErrorIs(t, err, ErrMaximumLimit)
	assert.True(t, Error.Has(err))
	assert.Equal(t, "Name,Phone\nBarry,(580)776-2009\n", buf.String())

	buf.Reset()
	_, err = ToCsvStream(context.Background(), phoneHeaders, rows(), &buf, WithMaxRows(4))
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(buf.String(), "\n"))
}

func TestExcelMaxRows(t *testing.T) {
	var buf bytes.Buffer
	_, err := ToExcelStream(context.Background(), phoneHeaders, rows(), &buf, WithMaxRows(2))
	assert.ErrorIs(t, err, ErrMaximumLimit)
}

func TestCsvCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	_, err := ToCsvStream(ctx, phoneHeaders, rows(), &buf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExcelExportTo(t *testing.T) {
	var buf bytes.Buffer
	_, err := ToExcelStream(context.Background(), phoneHeaders, rows(), &buf, WithSheetName("Contacts"))
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	got, err := f.GetRows("Contacts")
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, []string{"Name", "Phone"}, got[0])
	assert.Equal(t, []string{"Barry", "(580)776-2009"}, got[1])
	assert.Equal(t, []string{"Zed"}, got[4])
}

func TestExportToFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out", "book")
	path, err := NewCsv(phoneHeaders, rows()).Export(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, name+".csv", path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Name,Phone\n"))
}

func TestExportToStorage(t *testing.T) {
	fs, err := storage.NewLocal(storage.LocalConfig{Root: t.TempDir(), Endpoint: "http://localhost"})
	require.NoError(t, err)
	url, err := NewCsv(phoneHeaders, rows()).ExportToStorage(context.Background(), fs, "exports/book.csv")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "exports/book.csv"))
	assert.True(t, fs.Exists(context.Background(), "exports/book.csv"))
}

func TestGetFilename(t *testing.T) {
	assert.Equal(t, "/tmp/a.csv", getFilename("/tmp/a.csv", CsvSuffix))
	assert.Equal(t, "/tmp/a.xlsx", getFilename("/tmp/a", ExcelSuffix))
	assert.True(t, strings.HasSuffix(getFilename("", ExcelSuffix), ".xlsx"))
}
