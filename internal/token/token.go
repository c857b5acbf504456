package token

// Kind classifies a search term token.
type Kind uint8

const (
	End Kind = iota
	Word
	Quoted
)

var kindNames = [...]string{End: "end", Word: "word", Quoted: "quoted"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is one piece of a search term. Quoted values keep their quotes.
type Token struct {
	Kind  Kind
	Value string
}

// Tokenizer splits a raw search term. The last token is always End.
type Tokenizer interface {
	Tokenize(input string) []Token
}

var _ Tokenizer = (*ShellTokenizer)(nil)
