// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// charmap is the immutable bidirectional mapping between 16-bit codepoints
// and display glyphs. It is built exactly once and never mutated, so
// unsynchronized concurrent reads are safe.
type charmap struct {
	glyphs map[uint16]string
	codes  map[rune]uint16
}

var (
	tableOnce sync.Once
	table     *charmap
)

// characterTable returns the process-wide character table, building it on
// first use.
func characterTable() *charmap {
	tableOnce.Do(func() { table = buildCharmap() })
	return table
}

func buildCharmap() *charmap {
	glyphs := make(map[uint16]string, 512)
	codes := make(map[rune]uint16, 512)

	add := func(cp uint16, r rune) {
		glyphs[cp] = string(r)
		codes[r] = cp
	}

	// Printable Basic Latin and Latin-1 glyphs sit at their rune values.
	for r := rune(0x0020); r <= 0x007E; r++ {
		add(uint16(r), r)
	}
	for r := rune(0x00A1); r <= 0x00FF; r++ {
		add(uint16(r), r)
	}

	// Game-specific glyphs outside the pass-through ranges. The scroll
	// prompts 0x25BC/0x25BD are deliberately absent: the decoder turns
	// them into \r and \f before any table lookup.
	for cp, r := range map[uint16]rune{
		0x2018: '‘',
		0x2019: '’',
		0x201C: '“',
		0x201D: '”',
		0x2026: '…',
		0x2190: '←',
		0x2191: '↑',
		0x2192: '→',
		0x2193: '↓',
		0x25A0: '■',
		0x25C9: '◉',
		0x25CB: '○',
		0x25CF: '●',
		0x2605: '★',
		0x2640: '♀',
		0x2642: '♂',
		0x263A: '☺',
		0x266A: '♪',
	} {
		add(cp, r)
	}

	// Pair markers render as multi-character sequences. The encoder matches
	// them lexically, so only the decode direction lives in the table.
	glyphs[cpPairP] = "[P]"
	glyphs[cpPairM] = "[M]"

	return &charmap{glyphs: glyphs, codes: codes}
}

// glyph returns the display string for a codepoint.
func (c *charmap) glyph(cp uint16) (string, bool) {
	g, ok := c.glyphs[cp]
	return g, ok
}

// code returns the codepoint for a single-rune glyph.
func (c *charmap) code(r rune) (uint16, bool) {
	cp, ok := c.codes[r]
	return cp, ok
}

// Codepoints exposes the character table as an x/text Encoding over streams
// of little-endian uint16 codepoints. The decoder maps each codepoint to
// its glyph (U+FFFD when unmapped); the encoder maps runes back, replacing
// unmappable runes with '?'. Control codes and escapes are the message
// codec's concern, not this adapter's.
var Codepoints encoding.Encoding = codepointEncoding{}

type codepointEncoding struct{}

func (codepointEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &codepointDecoder{cm: characterTable()}}
}

func (codepointEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &codepointEncoder{cm: characterTable()}}
}

type codepointDecoder struct {
	cm *charmap
}

func (d *codepointDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc+2 <= len(src) {
		cp := uint16(src[nSrc]) | uint16(src[nSrc+1])<<8

		g, ok := d.cm.glyph(cp)
		if !ok {
			g = string(utf8.RuneError)
		}
		if len(g) > len(dst)-nDst {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], g)
		nSrc += 2
	}
	if nSrc < len(src) {
		// Odd trailing byte: half a codepoint.
		err = transform.ErrShortSrc
	}
	return nDst, nSrc, err
}

func (d *codepointDecoder) Reset() {}

type codepointEncoder struct {
	cm *charmap
}

func (e *codepointEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst+2 > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		cp, ok := e.cm.code(r)
		if !ok {
			cp, _ = e.cm.code('?')
		}
		dst[nDst] = byte(cp)
		dst[nDst+1] = byte(cp >> 8)
		nDst += 2
		nSrc += size
	}
	return nDst, nSrc, nil
}

func (e *codepointEncoder) Reset() {}
