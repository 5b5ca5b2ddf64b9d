// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Archive is a decoded message archive: the ordered messages plus the
// 16-bit key stored unencrypted in the header.
type Archive struct {
	Key      uint16
	Messages []string
}

// Decode parses a complete archive buffer. Decoding is a pure function of
// the bytes; the only shared state it touches is the immutable character
// table, so archives may be decoded concurrently.
func Decode(data []byte) (*Archive, error) {
	count, key, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	entries, err := decodeTable(data, count, key)
	if err != nil {
		return nil, err
	}

	messages := make([]string, count)
	for i, e := range entries {
		end := int64(e.Offset) + int64(e.Size)*2
		if int64(e.Offset) > int64(len(data)) || end > int64(len(data)) {
			return nil, fmt.Errorf("message %d: extent [%d, %d) exceeds %d bytes: %w",
				i, e.Offset, end, len(data), ErrTruncated)
		}
		messages[i] = decodeMessage(data[e.Offset:], int(e.Size), keyState(messageKey(i)))
	}

	return &Archive{Key: key, Messages: messages}, nil
}

// DecodeHeader reads only the message count and initial key, skipping the
// offset table. Fast path for callers that just need metadata.
func DecodeHeader(data []byte) (count, key uint16, err error) {
	if len(data) < headerSize {
		return 0, 0, fmt.Errorf("header: need %d bytes, have %d: %w",
			headerSize, len(data), ErrTruncated)
	}
	return binary.LittleEndian.Uint16(data), binary.LittleEndian.Uint16(data[2:]), nil
}

// PeekKey returns the initial key at byte offset 2 without validating the
// rest of the buffer. Callers use it to preserve an archive's original key
// across re-encoding. A buffer shorter than the header yields 0.
func PeekKey(data []byte) uint16 {
	if len(data) < headerSize {
		return 0
	}
	return binary.LittleEndian.Uint16(data[2:])
}

// Encode builds a complete archive buffer: header, encrypted offset table,
// then each message's encrypted codepoint stream in a contiguous layout.
// Everything is buffered in memory before any caller-visible write happens.
func Encode(messages []string, key uint16, trainerNames bool) []byte {
	streams := make([][]uint16, len(messages))
	for i, m := range messages {
		streams[i] = encodeMessage(m, trainerNames)
	}

	entries := make([]tableEntry, len(streams))
	offset := uint32(headerSize + len(streams)*entrySize)
	for i, s := range streams {
		entries[i] = tableEntry{Offset: offset, Size: uint32(len(s))}
		offset += uint32(len(s) * 2)
	}

	out := make([]byte, 0, offset)
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint16(hdr[0:], uint16(len(messages)))
	binary.LittleEndian.PutUint16(hdr[2:], key)
	out = append(out, hdr[:]...)
	out = encodeTable(out, entries, key)

	var word [2]byte
	for i, s := range streams {
		k := keyState(messageKey(i))
		for _, cp := range s {
			binary.LittleEndian.PutUint16(word[:], k.step(cp))
			out = append(out, word[:]...)
		}
	}
	return out
}

// DecodeFile reads and decodes an archive from disk.
func DecodeFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return Decode(data)
}

// EncodeFile encodes messages and writes the archive atomically: the buffer
// goes to a temp file in the target directory, which is renamed over the
// destination only on success. A failed encode never corrupts an existing
// file.
func EncodeFile(path string, messages []string, key uint16, trainerNames bool) error {
	data := Encode(messages, key, trainerNames)

	tmp, err := os.CreateTemp(filepath.Dir(path), "msgdata_*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save archive: %w", err)
	}
	return nil
}
