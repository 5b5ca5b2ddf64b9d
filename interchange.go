// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

package msgdata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// keyMarker opens the text interchange format: a "# Key: 0xXXXX" line
// followed by one message per line.
const keyMarker = "# Key: "

// ExportText writes the archive as editable text.
func ExportText(w io.Writer, a *Archive) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s0x%04X\n", keyMarker, a.Key)
	for _, m := range a.Messages {
		bw.WriteString(m)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ImportText parses a text export, returning the messages and the key from
// the header line. The header must come first; a missing marker or an
// unparsable hex value yields ErrInvalidHeader. Each message line is
// normalized to NFC so edited text matches the character table's composed
// forms.
func ImportText(r io.Reader) ([]string, uint16, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, 0, fmt.Errorf("read header line: %w", err)
		}
		return nil, 0, fmt.Errorf("empty input: %w", ErrInvalidHeader)
	}

	line := strings.TrimPrefix(sc.Text(), "\uFEFF") // tolerate an editor BOM
	if !strings.HasPrefix(line, keyMarker) {
		return nil, 0, fmt.Errorf("missing %q marker: %w", keyMarker, ErrInvalidHeader)
	}
	keyText := strings.TrimSpace(strings.TrimPrefix(line, keyMarker))
	v, err := strconv.ParseUint(strings.TrimPrefix(keyText, "0x"), 16, 16)
	if err != nil {
		return nil, 0, fmt.Errorf("key %q: %w", keyText, ErrInvalidHeader)
	}

	var messages []string
	for sc.Scan() {
		messages = append(messages, norm.NFC.String(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("read messages: %w", err)
	}
	return messages, uint16(v), nil
}
