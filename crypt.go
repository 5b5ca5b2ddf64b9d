// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

// Key derivation multipliers and the keystream step increment.
const (
	tableKeyMul   = 0x2FD
	messageKeyMul = 0x91BD3
	keyStep       = 0x493D
)

// tableKey derives the offset-table base key from the archive's initial key.
func tableKey(initial uint16) uint16 {
	return uint16(uint32(initial) * tableKeyMul)
}

// entryKey derives the 32-bit XOR mask for offset-table entry i.
// Both halves of the mask carry the same 16-bit value.
func entryKey(tk uint16, i int) uint32 {
	k := (uint32(tk) * uint32(i+1)) & 0xFFFF
	return k | k<<16
}

// messageKey derives the initial keystream value for message i.
// It depends only on the index, never on the archive key, and uses a
// distinct multiplier from the table key.
func messageKey(i int) uint16 {
	return uint16(messageKeyMul * uint32(i+1))
}

// keyState is the rolling keystream for a single message or table.
// It is local to one decode/encode call and never shared across messages.
type keyState uint16

// step XORs one 16-bit unit with the current key, then advances the key.
// The key advances on every consumed unit, including words consumed inside
// the compressed sub-loop. XOR is self-inverse, so the same function
// encrypts and decrypts.
func (k *keyState) step(v uint16) uint16 {
	out := v ^ uint16(*k)
	*k += keyStep
	return out
}
