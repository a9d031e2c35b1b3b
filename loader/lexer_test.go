package loader

import (
	"strings"
	"testing"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	l := newLexer(src)
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("next(): %v", err)
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndIdent(t *testing.T) {
	toks := lexAll(t, `flute { char-dim = 0.5 }`)
	wantKinds := []tokenKind{tokIdent, tokLBrace, tokIdent, tokEquals, tokNumber, tokRBrace, tokEOF}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantKinds))
	}
	for i, k := range wantKinds {
		if toks[i].kind != k {
			t.Fatalf("token %d kind = %v, want %v", i, toks[i].kind, k)
		}
	}
	if toks[2].text != "char-dim" {
		t.Fatalf("ident text = %q, want char-dim", toks[2].text)
	}
	if toks[4].num != 0.5 {
		t.Fatalf("number value = %v, want 0.5", toks[4].num)
	}
}

func TestLexerNegativeNumberVsMinusIdent(t *testing.T) {
	toks := lexAll(t, `-3.5`)
	if toks[0].kind != tokNumber || toks[0].num != -3.5 {
		t.Fatalf("got %+v, want number -3.5", toks[0])
	}
}

func TestLexerLineComment(t *testing.T) {
	toks := lexAll(t, "a // this is ignored\nb")
	if len(toks) != 3 || toks[0].text != "a" || toks[1].text != "b" {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexerString(t *testing.T) {
	toks := lexAll(t, `"xoxox"`)
	if toks[0].kind != tokString || toks[0].text != "xoxox" {
		t.Fatalf("got %+v, want string xoxox", toks[0])
	}
}

func TestLexerUnterminatedStringIsSyntaxError(t *testing.T) {
	l := newLexer(`"xoxox`)
	if _, err := l.next(); err == nil {
		t.Fatalf("expected error for unterminated string")
	}
}

func TestLexerUnexpectedCharacterReportsLine(t *testing.T) {
	l := newLexer("flute {\n  $\n}")
	// Consume "flute" and "{" first.
	if _, err := l.next(); err != nil {
		t.Fatalf("next(): %v", err)
	}
	if _, err := l.next(); err != nil {
		t.Fatalf("next(): %v", err)
	}
	_, err := l.next()
	if err == nil {
		t.Fatalf("expected error for '$'")
	}
	if !strings.HasPrefix(err.Error(), "line 2:") {
		t.Fatalf("error = %q, want it to report line 2", err)
	}
}

func TestLexerBracketsAndComma(t *testing.T) {
	toks := lexAll(t, `[0, 19]`)
	want := []tokenKind{tokLBracket, tokNumber, tokComma, tokNumber, tokRBracket, tokEOF}
	for i, k := range want {
		if toks[i].kind != k {
			t.Fatalf("token %d kind = %v, want %v", i, toks[i].kind, k)
		}
	}
}
