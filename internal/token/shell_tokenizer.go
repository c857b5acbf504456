package token

import (
	"unicode"
	"unicode/utf8"
)

// ShellTokenizer splits on whitespace while keeping quoted runs together.
// Quotes are kept in the token value and backslashes have no special meaning,
// so `"foo bar" baz` yields `"foo bar"` and `baz`.
//
// A quote only opens a quoted run at the start of a token; inside a word it is
// an ordinary character. An unterminated quote runs to the end of the input.
type ShellTokenizer struct {
	input []rune
	pos   int
}

func NewShellTokenizer() *ShellTokenizer {
	return &ShellTokenizer{}
}

func (t *ShellTokenizer) Tokenize(input string) []Token {
	t.input = []rune(input)
	t.pos = 0

	var tokens []Token

	t.skipWhitespace()
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if isQuote(ch) {
			tokens = append(tokens, t.readQuoted(ch))
		} else {
			tokens = append(tokens, t.readWord())
		}
		t.skipWhitespace()
	}

	tokens = append(tokens, Token{Kind: End})
	return tokens
}

func (t *ShellTokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(t.input[t.pos]) {
		t.pos++
	}
}

func (t *ShellTokenizer) readWord() Token {
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(t.input[t.pos]) {
		t.pos++
	}
	return Token{Kind: Word, Value: string(t.input[start:t.pos])}
}

func (t *ShellTokenizer) readQuoted(quote rune) Token {
	start := t.pos
	t.pos++ // opening quote
	for t.pos < len(t.input) && t.input[t.pos] != quote {
		t.pos++
	}
	if t.pos < len(t.input) {
		t.pos++ // closing quote
	}
	return Token{Kind: Quoted, Value: string(t.input[start:t.pos])}
}

func isQuote(ch rune) bool {
	return ch == '"' || ch == '\''
}

// SplitShell returns the token values of input in order.
func SplitShell(input string) []string {
	tokens := NewShellTokenizer().Tokenize(input)

	values := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == End {
			break
		}
		values = append(values, tok.Value)
	}
	return values
}

// SearchTerms splits input and keeps only values of at least minLen characters.
func SearchTerms(input string, minLen int) []string {
	values := SplitShell(input)

	terms := values[:0]
	for _, v := range values {
		if utf8.RuneCountInString(v) >= minLen {
			terms = append(terms, v)
		}
	}
	return terms
}
