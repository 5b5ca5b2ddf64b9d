// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Control codepoints. They change decoder state instead of producing a glyph.
const (
	cpPairP      = 0x01E0 // [P] pair marker
	cpPairM      = 0x01E1 // [M] pair marker
	cpScrollOne  = 0x25BC // prompt, scroll one line: \r
	cpScrollAll  = 0x25BD // prompt, clear the box: \f
	cpLineBreak  = 0xE000 // \n
	cpCompress   = 0xF100 // 9-bit compression toggle
	cpVerbose    = 0xFFFE // next codepoint is a raw hex literal
	cpTerminator = 0xFFFF
)

// decodeState tags the message decoder's finite states.
type decodeState int

const (
	stateNormal decodeState = iota
	stateVerbose
	stateCompressed
)

// decodeMessage decrypts and decodes one message's codepoint stream. data
// must hold at least size little-endian uint16 words; the caller checks
// bounds. The keystream advances once per consumed word, including words
// consumed while unpacking compressed text.
func decodeMessage(data []byte, size int, key keyState) string {
	cm := characterTable()
	var sb strings.Builder
	state := stateNormal
	var unpack bitUnpacker

loop:
	for j := 0; j < size; j++ {
		cp := key.step(binary.LittleEndian.Uint16(data[j*2:]))

		switch state {
		case stateVerbose:
			if cp == cpTerminator {
				break loop
			}
			fmt.Fprintf(&sb, `\v%04X`, cp)
			state = stateNormal

		case stateCompressed:
			// Every word feeds the unpacker; the packed stream ends at a
			// code whose low byte is 0xFF, which also ends the message.
			codes, done := unpack.feed(cp)
			for _, code := range codes {
				if code == 0x000 || code == 0x001 {
					continue // reserved, no output
				}
				appendGlyph(&sb, cm, code)
			}
			if done {
				break loop
			}

		default: // stateNormal
			switch cp {
			case cpTerminator:
				break loop
			case cpLineBreak:
				sb.WriteString(`\n`)
			case cpScrollOne:
				sb.WriteString(`\r`)
			case cpScrollAll:
				sb.WriteString(`\f`)
			case cpCompress:
				state = stateCompressed
				unpack.reset()
			case cpVerbose:
				state = stateVerbose
			default:
				appendGlyph(&sb, cm, cp)
			}
		}
	}
	return sb.String()
}

// appendGlyph writes the glyph for a codepoint, or a \xHHHH escape when the
// character table does not recognize it.
func appendGlyph(sb *strings.Builder, cm *charmap, cp uint16) {
	if g, ok := cm.glyph(cp); ok {
		sb.WriteString(g)
		return
	}
	fmt.Fprintf(sb, `\x%04X`, cp)
}
