package lexer

import "testing"

func scanTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	toks, err := New(src).ScanAll()
	if err != nil {
		t.Fatalf("ScanAll(%q): %v", src, err)
	}
	types := make([]TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestScanParensAndAtoms(t *testing.T) {
	got := scanTypes(t, "(+ 1 2)")
	want := []TokenType{TokenLParen, TokenIdent, TokenInteger, TokenInteger, TokenRParen, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanQuoteFamily(t *testing.T) {
	got := scanTypes(t, "'a `(b ,c ,@d)")
	want := []TokenType{
		TokenQuote, TokenIdent,
		TokenBackQuote, TokenLParen, TokenIdent, TokenComma, TokenIdent,
		TokenCommaAt, TokenIdent, TokenRParen, TokenEOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanNumberForms(t *testing.T) {
	cases := []struct {
		src  string
		want TokenType
	}{
		{"42", TokenInteger},
		{"-42", TokenInteger},
		{"3.14", TokenFloat},
		{".5", TokenFloat},
		{"5.", TokenFloat},
		{"1_000", TokenInteger},
		{"1/2", TokenRatio},
		{"#16rFF", TokenInteger},
	}
	for _, c := range cases {
		got := scanTypes(t, c.src)
		if len(got) != 2 || got[0] != c.want {
			t.Errorf("scan(%q) = %v, want [%s EOF]", c.src, got, c.want)
		}
	}
}

func TestScanStringAndChar(t *testing.T) {
	got := scanTypes(t, `"hi\n" #\a`)
	want := []TokenType{TokenString, TokenChar, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestUnterminatedStringErrors(t *testing.T) {
	_, err := New(`"abc`).ScanAll()
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestShebangSkipped(t *testing.T) {
	got := scanTypes(t, "#!/usr/bin/env quill\n(+ 1 1)")
	want := []TokenType{TokenLParen, TokenIdent, TokenInteger, TokenInteger, TokenRParen, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDocCommentToken(t *testing.T) {
	got := scanTypes(t, ";; does a thing\n(f)")
	want := []TokenType{TokenDocComment, TokenLParen, TokenIdent, TokenRParen, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPlainCommentIsSkipped(t *testing.T) {
	got := scanTypes(t, "; just a comment\n(f)")
	want := []TokenType{TokenLParen, TokenIdent, TokenRParen, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
