// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

// Trainer-name compression packs 9-bit character codes into 15-bit groups
// carried in uint16 words, LSB first. A code whose low byte is 0xFF marks
// the end of the packed stream; the all-ones padding of the final word and
// the 0xFFFF message terminator both satisfy it.

// packCodes packs character codes and returns the emitted words. The final
// partial group is padded with one bits so the unpacker sees an end marker.
func packCodes(codes []uint16) []uint16 {
	var out []uint16
	var buffer uint32
	var bits uint

	for _, c := range codes {
		buffer |= uint32(c&0x1FF) << bits
		bits += 9
		for bits >= 15 {
			out = append(out, uint16(buffer&0x7FFF))
			buffer >>= 15
			bits -= 15
		}
	}
	if bits > 0 {
		buffer |= uint32(0xFFFF) << bits
		out = append(out, uint16(buffer&0x7FFF))
	}
	return out
}

// bitUnpacker mirrors packCodes: it accumulates 15 bits per fed word and
// extracts 9-bit character codes.
type bitUnpacker struct {
	buffer uint32
	bits   uint
}

func (u *bitUnpacker) reset() {
	u.buffer, u.bits = 0, 0
}

// feed consumes one word and returns the codes it completed, plus whether
// the end marker was reached. Codes after the marker are never extracted.
func (u *bitUnpacker) feed(word uint16) (codes []uint16, done bool) {
	u.buffer |= uint32(word) << u.bits
	u.bits += 15
	for u.bits >= 9 {
		code := uint16(u.buffer & 0x1FF)
		if code&0xFF == 0xFF {
			return codes, true
		}
		u.buffer >>= 9
		u.bits -= 9
		codes = append(codes, code)
	}
	return codes, false
}
