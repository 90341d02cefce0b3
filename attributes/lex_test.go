package attributes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(kind tokenKind, r rune) token { return token{kind: kind, r: r} }

var unexported = cmp.AllowUnexported(token{}, item{})

func TestLex(t *testing.T) {
	tests := []struct {
		input string
		want  []token
	}{
		{
			input: "d(0,9)",
			want: []token{
				tok(tokenChar, 'd'), tok(tokenParen, '('), tok(tokenDigit, '0'),
				tok(tokenComma, ','), tok(tokenDigit, '9'), tok(tokenParen, ')'),
			},
		},
		{
			input: "d(-1, 2)",
			want: []token{
				tok(tokenChar, 'd'), tok(tokenParen, '('), tok(tokenMinus, '-'), tok(tokenDigit, '1'),
				tok(tokenComma, ','), tok(tokenSpace, ' '), tok(tokenDigit, '2'), tok(tokenParen, ')'),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, lex(tc.input), unexported); diff != "" {
				t.Fatalf("lex mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []token
		wantPos int
		want    int64
		ok      bool
	}{
		{"two_digits", lex("12"), 2, 12, true},
		{"stops_at_paren", lex("12)"), 2, 12, true},
		{"stops_before_paren", lex("1)2"), 1, 1, true},
		{"no_digits", lex("a"), 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, n, ok := parseNumber(tc.tokens, 0)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.wantPos, pos)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestParseString(t *testing.T) {
	pos, s := parseString(lex("ab"), 0)
	assert.Equal(t, 2, pos)
	assert.Equal(t, "ab", s)

	pos, s = parseString(lex("a(b"), 0)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "a", s)

	pos, s = parseString(lex("tr-3)"), 0)
	assert.Equal(t, 4, pos)
	assert.Equal(t, "tr-3", s)
}

func TestParse(t *testing.T) {
	key := func(s string) item { return item{key: s, isKey: true} }
	arg := func(a Arg) item { return item{arg: a} }

	tests := []struct {
		input string
		want  []item
	}{
		{"a(1,2)", []item{key("a"), arg(NumberArg(1)), arg(NumberArg(2))}},
		{"a(11,2)", []item{key("a"), arg(NumberArg(11)), arg(NumberArg(2))}},
		{"a(11,ba)", []item{key("a"), arg(NumberArg(11)), arg(StringArg("ba"))}},
		{"a(-11,true)", []item{key("a"), arg(NumberArg(-11)), arg(BoolArg(true))}},
		{"a(-11,tr-3)", []item{key("a"), arg(NumberArg(-11)), arg(StringArg("tr-3"))}},
		{"a", []item{key("a")}},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parse(lex(tc.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, unexported); diff != "" {
				t.Fatalf("parse mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("dangling_minus", func(t *testing.T) {
		_, err := parse(lex("a(-x)"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pos 2")
	})
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		input string
		want  Entry
	}{
		{"d(1,2,test,true)", Entry{Key: "d", Args: []Arg{NumberArg(1), NumberArg(2), StringArg("test"), BoolArg(true)}}},
		{"d", Entry{Key: "d"}},
		{"d()", Entry{Key: "d"}},
		{"checkpoint(0, -1, 2)", Entry{Key: "checkpoint", Args: []Arg{NumberArg(0), NumberArg(-1), NumberArg(2)}}},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseEntry(tc.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("entry mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("errors", func(t *testing.T) {
		for _, input := range []string{"", "(1)", "a(-)", "a b"} {
			_, err := ParseEntry(input)
			assert.Error(t, err, input)
		}
		_, err := ParseEntry("(1)")
		assert.ErrorIs(t, err, ErrMissingKey)
	})
}

func TestEntryArgs(t *testing.T) {
	e, err := ParseEntry("moving(left, 3, true)")
	require.NoError(t, err)

	dir, err := e.StringArg(0)
	require.NoError(t, err)
	assert.Equal(t, "left", dir)

	n, err := e.Number(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	b, err := e.Bool(2)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = e.Number(0)
	assert.EqualError(t, err, "moving: argument 0 is a string, expected number")
	_, err = e.Number(5)
	assert.EqualError(t, err, "moving: missing argument 5")

	assert.Equal(t, "moving(left, 3, true)", e.String())
	assert.Equal(t, "goal", Key("goal(1)"))
	assert.Equal(t, "", Key("(1)"))
}
