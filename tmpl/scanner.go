package tmpl

import (
	"log/slog"
	"strings"
)

// Default snippet delimiters. A block opens on two consecutive open runes
// and closes on two consecutive close runes at nesting depth one.
const (
	DefaultOpen  = '['
	DefaultClose = ']'
)

// Scanner extracts literal text runs and doubly-delimited snippet blocks
// from a [Source].
//
// The delimiter convention is doubled single characters: "[[" opens a block
// and "]]" closes it. While inside a block, each single open rune increments
// a nesting depth counter and each single close rune decrements it, so
// snippet bodies may contain ordinary balanced bracket structures (such as a
// sequence literal) without terminating the block early. Only a doubled
// close rune seen at depth exactly one ends the block.
type Scanner struct {
	open  rune
	close rune
}

// NewScanner returns a Scanner using the default [[ ]] delimiters.
func NewScanner() Scanner {
	return Scanner{open: DefaultOpen, close: DefaultClose}
}

// NewScannerDelims returns a Scanner using the given delimiter runes.
func NewScannerDelims(open, close rune) Scanner {
	return Scanner{open: open, close: close}
}

// Scan consumes the stream up to and including the next snippet block.
//
// It returns the literal text preceding the block, the full block text
// including its delimiters (empty if the stream ended first), and an
// end-of-stream flag. Reaching end of stream while a block is open is a
// formatting error reported with the literal text leading up to the block.
func (sc Scanner) Scan(src *Source) (literal, block string, eof bool, err error) {
	var lit, blk strings.Builder

	inBlock := false
	depth := 0

	for {
		c, ok := src.Next()
		if !ok {
			if inBlock {
				return "", "", false, ErrUnclosedBlock.With(
					slog.String("preceding", lit.String()),
					slog.String("partial", blk.String()),
				)
			}

			return lit.String(), "", true, nil
		}

		if !inBlock {
			if c == sc.open {
				if p, ok := src.Peek(); ok && p == sc.open {
					src.Next() // consume second open rune

					inBlock = true
					depth = 1

					blk.WriteRune(sc.open)
					blk.WriteRune(sc.open)

					continue
				}
			}

			// A lone delimiter outside any block is ordinary text.
			lit.WriteRune(c)

			continue
		}

		switch c {
		case sc.close:
			if depth == 1 {
				if p, ok := src.Peek(); ok && p == sc.close {
					src.Next() // consume second close rune

					blk.WriteRune(sc.close)
					blk.WriteRune(sc.close)

					return lit.String(), blk.String(), false, nil
				}
			}

			depth--
			blk.WriteRune(c)

		case sc.open:
			depth++
			blk.WriteRune(c)

		default:
			blk.WriteRune(c)
		}
	}
}

// Body strips the doubled delimiters from a block returned by [Scanner.Scan]
// and returns the trimmed snippet expression text.
func (sc Scanner) Body(block string) string {
	body := strings.TrimPrefix(block, string([]rune{sc.open, sc.open}))
	body = strings.TrimSuffix(body, string([]rune{sc.close, sc.close}))

	return strings.TrimSpace(body)
}
