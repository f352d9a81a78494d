package lvrfetcher

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows_Basic(t *testing.T) {
	text := "鄉鎮市區,總價元,備註\n中正區,100,\n大安區,200,附車位\n"
	rows := parseRows(text, zerolog.Nop())
	require.Len(t, rows, 2)
	assert.Equal(t, "中正區", rows[0]["鄉鎮市區"])
	assert.Equal(t, "100", rows[0]["總價元"])
	assert.Equal(t, "", rows[0]["備註"])
	assert.Equal(t, "附車位", rows[1]["備註"])
}

func TestParseRows_RaggedRows(t *testing.T) {
	text := "a,b,c\n1,2\n1,2,3,4\n"
	rows := parseRows(text, zerolog.Nop())
	require.Len(t, rows, 2)

	// Short row: missing cells become empty.
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "", rows[0]["c"])

	// Long row: extra cells are dropped.
	assert.Equal(t, "3", rows[1]["c"])
	assert.Len(t, rows[1], 3)
}

func TestParseRows_LazyQuotes(t *testing.T) {
	text := "a,b\nplain,say \"hi\" there\n"
	rows := parseRows(text, zerolog.Nop())
	require.Len(t, rows, 1)
	assert.Equal(t, `say "hi" there`, rows[0]["b"])
}

func TestParseRows_WhitespaceTrimmed(t *testing.T) {
	text := " a , b \n 1 , 2 \n"
	rows := parseRows(text, zerolog.Nop())
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "2", rows[0]["b"])
}

func TestParseRows_GarbageDegradesToEmpty(t *testing.T) {
	assert.Empty(t, parseRows("", zerolog.Nop()))
	assert.Empty(t, parseRows("\"", zerolog.Nop()))
}

func TestParseRows_HeaderOnly(t *testing.T) {
	assert.Empty(t, parseRows("a,b,c\n", zerolog.Nop()))
}
