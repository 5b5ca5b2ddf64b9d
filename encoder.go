// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

// encodeMessage converts one message string to its unencrypted codepoint
// stream, terminator included. Escape sequences map back to their control
// codepoints; plain characters go through the reverse character table, and
// runes the table does not know are dropped.
//
// In trainer-name mode the character codes are packed at 9 bits each behind
// a compression toggle. Control escapes do not fit in 9 bits and are
// ignored there; name entries are plain text.
func encodeMessage(msg string, trainerName bool) []uint16 {
	cm := characterTable()
	runes := []rune(msg)

	var codes []uint16

	// chars always land in the stream; control codepoints only when the
	// message is not packed.
	char := func(cp uint16) { codes = append(codes, cp) }
	ctrl := func(cps ...uint16) {
		if !trainerName {
			codes = append(codes, cps...)
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' && i+1 < len(runes) {
			switch runes[i+1] {
			case 'n':
				ctrl(cpLineBreak)
				i++
				continue
			case 'r':
				ctrl(cpScrollOne)
				i++
				continue
			case 'f':
				ctrl(cpScrollAll)
				i++
				continue
			case 'x':
				// Raw codepoint; reserved values 0x0000/0x0001 pass
				// through here as well.
				if v, ok := parseHex4(runes[i+2:]); ok {
					ctrl(v)
					i += 5
					continue
				}
			case 'v':
				if v, ok := parseHex4(runes[i+2:]); ok {
					ctrl(cpVerbose, v)
					i += 5
					continue
				}
			}
			// Unrecognized escape: keep the backslash as a plain character.
		}

		if r == '[' && i+2 < len(runes) && runes[i+2] == ']' {
			switch runes[i+1] {
			case 'P':
				ctrl(cpPairP)
				i += 2
				continue
			case 'M':
				ctrl(cpPairM)
				i += 2
				continue
			}
		}

		if cp, ok := cm.code(r); ok {
			char(cp)
		}
	}

	if trainerName {
		out := make([]uint16, 0, len(codes)+2)
		out = append(out, cpCompress)
		out = append(out, packCodes(codes)...)
		return append(out, cpTerminator)
	}
	return append(codes, cpTerminator)
}

// parseHex4 reads exactly four hex digits.
func parseHex4(rs []rune) (uint16, bool) {
	if len(rs) < 4 {
		return 0, false
	}
	var v uint16
	for _, r := range rs[:4] {
		var d uint16
		switch {
		case r >= '0' && r <= '9':
			d = uint16(r - '0')
		case r >= 'a' && r <= 'f':
			d = uint16(r-'a') + 10
		case r >= 'A' && r <= 'F':
			d = uint16(r-'A') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}
