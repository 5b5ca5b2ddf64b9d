// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Archive header: count uint16 + initial key uint16, unencrypted.
	headerSize = 4

	// Offset-table entry: offset uint32 + size uint32, encrypted.
	entrySize = 8
)

// Typed failure modes. Every error the codec returns wraps one of these;
// callers test with errors.Is.
var (
	// ErrTruncated reports a declared table or message extent that exceeds
	// the available bytes.
	ErrTruncated = errors.New("truncated archive stream")

	// ErrInvalidHeader reports a text-interchange input whose key marker is
	// missing or unparsable.
	ErrInvalidHeader = errors.New("invalid interchange header")
)

// tableEntry locates one message's codepoint stream within the archive.
type tableEntry struct {
	Offset uint32 // byte offset from archive start
	Size   uint32 // codepoint count, including the terminator
}

// decodeTable reads and decrypts the offset table that follows the header.
func decodeTable(data []byte, count, initial uint16) ([]tableEntry, error) {
	need := headerSize + int(count)*entrySize
	if len(data) < need {
		return nil, fmt.Errorf("offset table: %d entries need %d bytes, have %d: %w",
			count, need, len(data), ErrTruncated)
	}

	tk := tableKey(initial)
	entries := make([]tableEntry, count)
	for i := range entries {
		mask := entryKey(tk, i)
		off := headerSize + i*entrySize
		entries[i] = tableEntry{
			Offset: binary.LittleEndian.Uint32(data[off:]) ^ mask,
			Size:   binary.LittleEndian.Uint32(data[off+4:]) ^ mask,
		}
	}
	return entries, nil
}

// encodeTable appends the encrypted offset table to dst and returns it.
// Offsets must already describe the final contiguous layout.
func encodeTable(dst []byte, entries []tableEntry, initial uint16) []byte {
	tk := tableKey(initial)
	var buf [entrySize]byte
	for i, e := range entries {
		mask := entryKey(tk, i)
		binary.LittleEndian.PutUint32(buf[0:], e.Offset^mask)
		binary.LittleEndian.PutUint32(buf[4:], e.Size^mask)
		dst = append(dst, buf[:]...)
	}
	return dst
}
