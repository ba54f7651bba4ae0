package minipython

import "testing"

func tokKinds(toks []token) []tokenKind {
	kinds := make([]tokenKind, len(toks))
	for i, t := range toks {
		kinds[i] = t.kind
	}
	return kinds
}

func assertKinds(t *testing.T, toks []token, want ...tokenKind) {
	t.Helper()
	got := tokKinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got kind %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexKeywordsAndIdent(t *testing.T) {
	toks, err := lex("var x if while write read true false not")
	if err != nil {
		t.Fatal(err)
	}
	assertKinds(t, toks, tokVar, tokIdent, tokIf, tokWhile, tokWrite, tokRead, tokTrue, tokFalse, tokNot, tokEOF)
}

func TestLexNumberAndOperators(t *testing.T) {
	toks, err := lex("42 + - * / == != <= >= < > = ( ) { } ;")
	if err != nil {
		t.Fatal(err)
	}
	assertKinds(t, toks,
		tokNumber, tokPlus, tokMinus, tokStar, tokSlash,
		tokEq, tokNeq, tokLe, tokGe, tokLt, tokGt, tokAssign,
		tokLParen, tokRParen, tokLBrace, tokRBrace, tokSemicolon, tokEOF)
	if toks[0].text != "42" {
		t.Fatalf("number text = %q, want 42", toks[0].text)
	}
}

func TestLexTwoCharOperatorsPreferredOverOneChar(t *testing.T) {
	// "<=" must not lex as tokLt followed by tokAssign.
	toks, err := lex("<=")
	if err != nil {
		t.Fatal(err)
	}
	assertKinds(t, toks, tokLe, tokEOF)
}

func TestLexSkipsCommentsAndWhitespace(t *testing.T) {
	toks, err := lex("x # this is a comment\n= 1;")
	if err != nil {
		t.Fatal(err)
	}
	assertKinds(t, toks, tokIdent, tokAssign, tokNumber, tokSemicolon, tokEOF)
}

func TestLexTracksLineNumbers(t *testing.T) {
	toks, err := lex("x\n=\n1")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].line != 1 || toks[1].line != 2 || toks[2].line != 3 {
		t.Fatalf("unexpected line numbers: %d %d %d", toks[0].line, toks[1].line, toks[2].line)
	}
}

func TestLexUnexpectedCharacterIsError(t *testing.T) {
	_, err := lex("x = 1 $ 2;")
	if err == nil {
		t.Fatal("expected an error for an unrecognised character")
	}
}

func TestLexIdentifierAllowsUnderscoreAndDigits(t *testing.T) {
	toks, err := lex("_count2")
	if err != nil {
		t.Fatal(err)
	}
	assertKinds(t, toks, tokIdent, tokEOF)
	if toks[0].text != "_count2" {
		t.Fatalf("identifier text = %q", toks[0].text)
	}
}
