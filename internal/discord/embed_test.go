package discord

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TruncatesEachPart(t *testing.T) {
	e := Normalize(Embed{
		Title:       strings.Repeat("t", 300),
		Description: strings.Repeat("d", 5000),
		Author:      strings.Repeat("a", 300),
		Fields: []Field{
			{Name: strings.Repeat("n", 300), Value: strings.Repeat("v", 2000)},
		},
	})

	assert.Equal(t, MaxTitleLength, utf8.RuneCountInString(e.Title))
	assert.True(t, strings.HasSuffix(e.Title, ellipsis))
	assert.Equal(t, MaxAuthorLength, utf8.RuneCountInString(e.Author))
	require.Len(t, e.Fields, 1)
	assert.Equal(t, MaxFieldNameLength, utf8.RuneCountInString(e.Fields[0].Name))
	assert.Equal(t, MaxFieldValueLength, utf8.RuneCountInString(e.Fields[0].Value))
	assert.LessOrEqual(t, e.Length(), MaxEmbedTotalLength)
}

func TestNormalize_DropsEmptyAndExtraFields(t *testing.T) {
	fields := []Field{{Name: "", Value: "x"}, {Name: "y", Value: ""}}
	for i := 0; i < 30; i++ {
		fields = append(fields, Field{Name: "f", Value: "v"})
	}
	e := Normalize(Embed{Title: "x", Fields: fields})
	assert.Len(t, e.Fields, MaxFields)
	for _, f := range e.Fields {
		assert.Equal(t, "f", f.Name)
	}
}

func TestNormalize_TotalLimitShrinksDescriptionThenFields(t *testing.T) {
	fields := make([]Field, 0, 25)
	for i := 0; i < 25; i++ {
		fields = append(fields, Field{Name: "name", Value: strings.Repeat("v", 300)})
	}
	e := Normalize(Embed{
		Title:       "title",
		Description: strings.Repeat("d", 4000),
		Fields:      fields,
	})

	assert.LessOrEqual(t, e.Length(), MaxEmbedTotalLength)
	assert.Empty(t, e.Description)
	assert.Less(t, len(e.Fields), 25)
}

func TestNormalize_MultibyteSafe(t *testing.T) {
	e := Normalize(Embed{Title: strings.Repeat("ç", 400)})
	assert.True(t, utf8.ValidString(e.Title))
	assert.Equal(t, MaxTitleLength, utf8.RuneCountInString(e.Title))
}

func TestNormalize_UntouchedWhenWithinLimits(t *testing.T) {
	in := Embed{Title: "Viatura 01", Description: "ok", Fields: []Field{{Name: "a", Value: "b", Inline: true}}}
	assert.Equal(t, in, Normalize(in))
}

func TestToMessageEmbed(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	me := Embed{
		Title:     "x",
		Author:    "Cap. Silva",
		Footer:    "vehicle • 1",
		ImageURL:  "https://img/1.png",
		Timestamp: ts,
		Fields:    []Field{{Name: "a", Value: "b", Inline: true}},
	}.toMessageEmbed()

	assert.Equal(t, "2026-03-01T12:00:00Z", me.Timestamp)
	require.NotNil(t, me.Author)
	assert.Equal(t, "Cap. Silva", me.Author.Name)
	require.NotNil(t, me.Footer)
	require.NotNil(t, me.Image)
	assert.Nil(t, me.Thumbnail)
	require.Len(t, me.Fields, 1)
	assert.True(t, me.Fields[0].Inline)
}
