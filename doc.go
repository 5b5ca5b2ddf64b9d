// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

/*
Package msgdata reads and writes the encrypted message archives that hold a
game's dialogue, menu strings and trainer names.

An archive is a little-endian binary blob: a 4-byte unencrypted header
(message count and a 16-bit key), an encrypted table of per-message
(offset, size) entries, and one encrypted 16-bit codepoint stream per
message. Codepoints carry either printable glyphs or control codes (line
breaks, scroll prompts, a compression toggle, hex literals); trainer names
are additionally packed at 9 bits per character.

# Basic Usage

Decoding an archive:

	archive, err := msgdata.DecodeFile("msg.dat")
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range archive.Messages {
		fmt.Println(m)
	}

Re-encoding with the original key preserved:

	err = msgdata.EncodeFile("msg.dat", archive.Messages, archive.Key, false)

# Escapes

Control codes with no printable glyph surface in decoded strings as literal
backslash escapes: \n, \r, \f, \xHHHH (raw codepoint), \vHHHH (verbose hex
literal), plus the pair markers [P] and [M]. The encoder maps them back.
Codepoints the character table does not recognize degrade to \xHHHH rather
than failing, so version-specific text stays round-trippable.

# Text Interchange

[ExportText] writes a human-editable dump: a "# Key: 0xXXXX" header line
followed by one message per line. [ImportText] parses it back, normalizing
each line to NFC so edited text matches the character table.

# Limitations

This package covers the message archive format only:

  - No script bytecode support (a separate format)
  - No ROM or archive-container extraction
  - Archives hold at most 65535 messages (the count is a uint16)
*/
package msgdata
