package tmpl

import (
	"errors"
	"testing"
)

func TestScan_LiteralOnly(t *testing.T) {
	sc := NewScanner()

	literal, block, eof, err := sc.Scan(NewSource("plain text, no snippets"))
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if !eof {
		t.Error("expected eof")
	}

	if literal != "plain text, no snippets" {
		t.Errorf("expected full literal, got %q", literal)
	}

	if block != "" {
		t.Errorf("expected no block, got %q", block)
	}
}

func TestScan_SingleBlock(t *testing.T) {
	sc := NewScanner()
	src := NewSource("a [[ x ]] b")

	literal, block, eof, err := sc.Scan(src)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if eof {
		t.Fatal("unexpected eof before block")
	}

	if literal != "a " {
		t.Errorf("expected literal 'a ', got %q", literal)
	}

	if block != "[[ x ]]" {
		t.Errorf("expected block '[[ x ]]', got %q", block)
	}

	literal, block, eof, err = sc.Scan(src)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if !eof || block != "" {
		t.Errorf("expected trailing literal at eof, got block %q", block)
	}

	if literal != " b" {
		t.Errorf("expected literal ' b', got %q", literal)
	}
}

func TestScan_NestedBrackets(t *testing.T) {
	// A sequence literal inside the block must not terminate it early.
	sc := NewScanner()

	_, block, _, err := sc.Scan(NewSource("[[ [1, [2, 3]] ]]"))
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if block != "[[ [1, [2, 3]] ]]" {
		t.Errorf("expected full nested block, got %q", block)
	}
}

func TestScan_LoneDelimitersAreText(t *testing.T) {
	sc := NewScanner()

	literal, block, eof, err := sc.Scan(NewSource("a [ b ] c"))
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if !eof || block != "" {
		t.Fatalf("expected literal-only scan, got block %q", block)
	}

	if literal != "a [ b ] c" {
		t.Errorf("expected single brackets preserved, got %q", literal)
	}
}

func TestScan_EmptyBlock(t *testing.T) {
	sc := NewScanner()

	_, block, _, err := sc.Scan(NewSource("[[]]"))
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if block != "[[]]" {
		t.Errorf("expected block '[[]]', got %q", block)
	}

	if body := sc.Body(block); body != "" {
		t.Errorf("expected empty body, got %q", body)
	}
}

func TestScan_UnterminatedBlock(t *testing.T) {
	sc := NewScanner()

	_, _, _, err := sc.Scan(NewSource("head [[ x"))
	if err == nil {
		t.Fatal("expected error for unterminated block")
	}

	if !errors.Is(err, ErrUnclosedBlock) {
		t.Errorf("expected ErrUnclosedBlock, got %v", err)
	}
}

func TestScan_CustomDelimiters(t *testing.T) {
	sc := NewScannerDelims('{', '}')

	literal, block, _, err := sc.Scan(NewSource("a {{ x }} b"))
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if literal != "a " || block != "{{ x }}" {
		t.Errorf("expected 'a ' and '{{ x }}', got %q and %q", literal, block)
	}
}

func TestBody_TrimsDelimitersAndSpace(t *testing.T) {
	sc := NewScanner()

	if body := sc.Body("[[  1 + 2  ]]"); body != "1 + 2" {
		t.Errorf("expected '1 + 2', got %q", body)
	}
}
