// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"
)

func TestEncodeMessageCodepoints(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want []uint16
	}{
		{"empty", "", []uint16{0xFFFF}},
		{"single char", "A", []uint16{0x0041, 0xFFFF}},
		{"line break", `\n`, []uint16{0xE000, 0xFFFF}},
		{"scroll", `\r\f`, []uint16{0x25BC, 0x25BD, 0xFFFF}},
		{"pair markers", `[P][M]`, []uint16{0x01E0, 0x01E1, 0xFFFF}},
		{"reserved hex literal", `\x0000`, []uint16{0x0000, 0xFFFF}},
		{"raw hex literal", `\x8000`, []uint16{0x8000, 0xFFFF}},
		{"verbose literal", `\v0041`, []uint16{0xFFFE, 0x0041, 0xFFFF}},
		{"bad escape keeps backslash", `\zoo`, []uint16{0x005C, 0x007A, 0x006F, 0x006F, 0xFFFF}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := encodeMessage(test.msg, false)
			if len(got) != len(test.want) {
				t.Fatalf("encodeMessage(%q) = %04X, want %04X", test.msg, got, test.want)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Fatalf("encodeMessage(%q) = %04X, want %04X", test.msg, got, test.want)
				}
			}
		})
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	messages := []string{
		"Hello, world!",
		`Line one\nLine two`,
		`Wait for it\r…then clear\f`,
		"Héllo ♂♀★",
		`[P] and [M] markers`,
		`raw \x8000 stays raw`,
		`verbose \v0041 stays verbose`,
		"",
	}

	data := Encode(messages, 0x1234, false)
	archive, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if archive.Key != 0x1234 {
		t.Errorf("key = 0x%04X, want 0x1234", archive.Key)
	}
	if len(archive.Messages) != len(messages) {
		t.Fatalf("got %d messages, want %d", len(archive.Messages), len(messages))
	}
	for i := range messages {
		if archive.Messages[i] != messages[i] {
			t.Errorf("message %d = %q, want %q", i, archive.Messages[i], messages[i])
		}
	}
}

func TestTrainerNameRoundTrip(t *testing.T) {
	names := []string{"RED", "Blue", "xX9z", ""}

	data := Encode(names, 0x7F2A, true)
	archive, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range names {
		if archive.Messages[i] != names[i] {
			t.Errorf("name %d = %q, want %q", i, archive.Messages[i], names[i])
		}
	}
}

func TestCompressedStreamStopsAtMarker(t *testing.T) {
	// Hand-build a message: compression toggle, packed "AB", terminator,
	// then a junk glyph the decoder must never reach.
	cps := []uint16{cpCompress}
	cps = append(cps, packCodes([]uint16{0x041, 0x042})...)
	cps = append(cps, cpTerminator, 0x043)

	buf := make([]byte, len(cps)*2)
	k := keyState(messageKey(0))
	for i, cp := range cps {
		binary.LittleEndian.PutUint16(buf[i*2:], k.step(cp))
	}

	if got := decodeMessage(buf, len(cps), keyState(messageKey(0))); got != "AB" {
		t.Errorf("decoded %q, want %q", got, "AB")
	}
}

func TestEmptyArchive(t *testing.T) {
	data := Encode(nil, 0x5555, false)
	if len(data) != 4 {
		t.Fatalf("empty archive is %d bytes, want 4", len(data))
	}

	archive, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if archive.Key != 0x5555 || len(archive.Messages) != 0 {
		t.Errorf("got key=0x%04X count=%d, want key=0x5555 count=0", archive.Key, len(archive.Messages))
	}
}

func TestSingleMessageArchive(t *testing.T) {
	archive, err := Decode(Encode([]string{"A"}, 0x1234, false))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(archive.Messages) != 1 || archive.Messages[0] != "A" {
		t.Errorf("got %q, want [A]", archive.Messages)
	}
}

func TestSemanticRoundTrip(t *testing.T) {
	// decode(encode(decode(A))) must reproduce decode(A). Backslash is
	// excluded from the alphabet: a random "\xHHHH" of a mapped codepoint
	// would legitimately decode to its glyph instead of the escape text.
	rng := rand.New(rand.NewSource(0x493D))

	for trial := 0; trial < 50; trial++ {
		messages := make([]string, rng.Intn(8))
		for i := range messages {
			line := make([]rune, rng.Intn(40))
			for j := range line {
				r := rune(0x20 + rng.Intn(0x5F))
				for r == '\\' {
					r = rune(0x20 + rng.Intn(0x5F))
				}
				line[j] = r
			}
			messages[i] = string(line)
		}

		key := uint16(rng.Intn(0x10000))
		first, err := Decode(Encode(messages, key, false))
		if err != nil {
			t.Fatalf("trial %d: first decode: %v", trial, err)
		}
		second, err := Decode(Encode(first.Messages, first.Key, false))
		if err != nil {
			t.Fatalf("trial %d: second decode: %v", trial, err)
		}

		for i := range messages {
			if first.Messages[i] != messages[i] {
				t.Fatalf("trial %d: message %d = %q, want %q", trial, i, first.Messages[i], messages[i])
			}
			if second.Messages[i] != first.Messages[i] {
				t.Fatalf("trial %d: re-encode diverged at %d: %q vs %q",
					trial, i, second.Messages[i], first.Messages[i])
			}
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	valid := Encode([]string{"Hello", "World"}, 0xBEEF, false)

	tests := []struct {
		name string
		data []byte
	}{
		{"short header", valid[:2]},
		{"short table", valid[:10]},
		{"short message", valid[:len(valid)-2]},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.data)
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("Decode = %v, want ErrTruncated", err)
			}
		})
	}
}

func TestDecodeHeaderFastPath(t *testing.T) {
	data := Encode([]string{"A", "B", "C"}, 0xBEEF, false)

	count, key, err := DecodeHeader(data)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if count != 3 || key != 0xBEEF {
		t.Errorf("got count=%d key=0x%04X, want count=3 key=0xBEEF", count, key)
	}

	if _, _, err := DecodeHeader(data[:3]); !errors.Is(err, ErrTruncated) {
		t.Errorf("short header: %v, want ErrTruncated", err)
	}
}

func TestPeekKey(t *testing.T) {
	data := Encode(nil, 0xCAFE, false)
	if got := PeekKey(data); got != 0xCAFE {
		t.Errorf("PeekKey = 0x%04X, want 0xCAFE", got)
	}
	if got := PeekKey(data[:2]); got != 0 {
		t.Errorf("PeekKey of short buffer = 0x%04X, want 0", got)
	}
}
