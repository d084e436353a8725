package addressbook

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opdss/addressbook/vector"
)

const sampleCsv = "Name,Phone\n" +
	"Nicholas,(420)798-1076\n" +
	"Nicholas,(347)725-4471\n" +
	"Barry,(580)776-2009\n"

func loadSample(t *testing.T) *Book {
	t.Helper()
	b := New()
	require.NoError(t, b.Load(strings.NewReader(sampleCsv)))
	return b
}

func TestLoadMergesNumbers(t *testing.T) {
	b := loadSample(t)
	assert.Equal(t, 2, b.Len())

	contact, ok := b.Find("Nicholas")
	require.True(t, ok)
	expected := vector.From("(420)798-1076", "(347)725-4471")
	assert.True(t, vector.Equal(expected, contact.Numbers()))
}

func TestSortThenPrint(t *testing.T) {
	b := loadSample(t)
	b.Sort()
	var out bytes.Buffer
	require.NoError(t, b.Print(&out))
	s := out.String()
	assert.Less(t, strings.Index(s, "Barry"), strings.Index(s, "Nicholas"))
	assert.Equal(t, "Name: Barry\nNumbers: \n(580)776-2009\n\n"+
		"Name: Nicholas\nNumbers: \n(420)798-1076\n(347)725-4471\n\n", s)
}

func TestFind(t *testing.T) {
	b := loadSample(t)
	c1, ok1 := b.Find("Nicholas")
	_, ok2 := b.Find("Nicholas231")
	assert.True(t, ok1)
	assert.False(t, ok2)
	assert.Equal(t, "Nicholas", c1.Name())
}

func TestFindReturnsCopy(t *testing.T) {
	b := loadSample(t)
	c, ok := b.Find("Barry")
	require.True(t, ok)
	require.NoError(t, c.AddNumber("000"))

	again, _ := b.Find("Barry")
	assert.Equal(t, 1, again.Numbers().Len())
}

func TestDelete(t *testing.T) {
	b := loadSample(t)
	assert.True(t, b.Delete("Nicholas"))
	_, ok := b.Find("Nicholas")
	assert.False(t, ok)
	_, ok = b.Find("Barry")
	assert.True(t, ok)
	assert.False(t, b.Delete("Nicholas"))
	assert.Equal(t, 1, b.Len())
}

func TestLoadEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Row
		wantErr error
	}{
		{name: "empty", input: ""},
		{name: "header only", input: "Name,Phone\n"},
		{name: "crlf and blank lines", input: "Name,Phone\r\nAnn,1\r\n\r\nBob,2\r\n",
			want: []Row{{"Ann", "1"}, {"Bob", "2"}}},
		{name: "extra fields kept in number", input: "Name,Phone\nAnn,1,ext 2\n",
			want: []Row{{"Ann", "1,ext 2"}}},
		{name: "quoted name", input: "Name,Phone\n\"Smith, Ann\",1\n",
			want: []Row{{"Smith, Ann", "1"}}},
		{name: "missing number", input: "Name,Phone\nAnn,1\nBob\n", wantErr: ErrMalformedRecord},
		{name: "empty name", input: "Name,Phone\n,1\n", wantErr: ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			err := b.Load(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, Error.Has(err))
				return
			}
			require.NoError(t, err)
			var got []Row
			it := b.Rows()
			for it.Next() {
				got = append(got, it.Value().(Row))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowsNextIsIdempotent(t *testing.T) {
	b := New()
	require.NoError(t, b.Load(strings.NewReader("Name,Phone\nAnn,1\nAnn,2\nBob,3\n")))
	it := b.Rows()
	var got []Row
	for it.Next() && it.Next() {
		got = append(got, it.Value().(Row))
	}
	assert.Equal(t, []Row{{"Ann", "1"}, {"Ann", "2"}, {"Bob", "3"}}, got)
	assert.False(t, it.Next())
}

func TestMalformedRecordReportsLine(t *testing.T) {
	err := New().Load(strings.NewReader("Name,Phone\nAnn,1\nBob\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestSaveRoundTrip(t *testing.T) {
	b := loadSample(t)
	var out bytes.Buffer
	require.NoError(t, b.Save(context.Background(), &out))
	assert.Equal(t, sampleCsv, out.String())

	again := New()
	require.NoError(t, again.Load(&out))
	assert.Equal(t, b.Len(), again.Len())
	for i := 0; i < b.Len(); i++ {
		x, err := b.Contacts().Ref(i)
		require.NoError(t, err)
		y, err := again.Contacts().Ref(i)
		require.NoError(t, err)
		assert.True(t, x.Equal(y))
	}
}

func TestSaveEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, New().Save(context.Background(), &out))
	assert.Equal(t, "Name,Phone\n", out.String())
}

func TestAdd(t *testing.T) {
	b := New()
	require.NoError(t, b.Add("Ann", "1"))
	require.NoError(t, b.Add("Ann", "2"))
	require.NoError(t, b.Add("Bob", "3"))
	assert.Equal(t, 2, b.Len())
	assert.ErrorIs(t, b.Add("", "4"), ErrEmptyName)

	c, ok := b.Find("Ann")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, c.Numbers().Slice())
}

func TestCloneIndependence(t *testing.T) {
	b := loadSample(t)
	c := b.Clone()
	require.NoError(t, c.Add("Barry", "999"))
	assert.True(t, c.Delete("Nicholas"))

	assert.Equal(t, 2, b.Len())
	barry, _ := b.Find("Barry")
	assert.Equal(t, 1, barry.Numbers().Len())
}

func TestContactEqual(t *testing.T) {
	a, err := NewContact("Ann", "1")
	require.NoError(t, err)
	b, err := NewContact("Ann", "1")
	require.NoError(t, err)
	assert.True(t, a.Equal(&b))
	require.NoError(t, b.AddNumber("2"))
	assert.False(t, a.Equal(&b))
}
