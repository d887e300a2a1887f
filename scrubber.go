// Copyright 2022 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package swparse

import (
	"bufio"
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeLines splits a raw header file into its lines, honoring §4.1/§6:
// a leading UTF-8 BOM switches decoding to UTF-8 (with the BOM stripped),
// otherwise the file is decoded as Latin-1 (ISO-8859-1).
func decodeLines(raw []byte) (lines []string, hadBOM bool) {
	if bytes.HasPrefix(raw, utf8BOM) {
		return splitLines(string(raw[len(utf8BOM):])), true
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// charmap's ISO-8859-1 decoder never rejects a byte sequence
		// (every byte maps to a code point); this path is unreachable
		// in practice but falls back to the raw bytes rather than
		// failing the whole file.
		decoded = raw
	}
	return splitLines(string(decoded)), false
}

func splitLines(s string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(s))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// isSkippedLine reports whether line matches the §4.1/§6 marker blacklist.
func isSkippedLine(line string) bool {
	for _, marker := range skippedLines {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// stripMultilineComment extracts /* ... */ spans from line, updating the
// multiline-comment-open state and returning the cleaned line plus any
// comment text found (possibly from more than one span on a single line).
// Mirrors the original parser's recursive handling of multiple comment
// blocks appearing on one source line.
func stripMultilineComment(line string, inComment bool) (cleaned string, extracted []string, stillOpen bool) {
	for {
		openPos := strings.Index(line, "/*")
		closePos := strings.Index(line, "*/")

		var comment string
		var found bool
		switch {
		case openPos != -1 && closePos > openPos:
			comment = line[openPos+2 : closePos]
			line = line[:openPos] + line[closePos+2:]
			inComment = false
			found = true
		case inComment && closePos != -1:
			comment = line[:closePos]
			line = line[closePos+2:]
			inComment = false
			found = true
		case openPos != -1:
			comment = line[openPos+2:]
			line = line[:openPos]
			inComment = true
			found = true
		case inComment:
			comment = line
			line = ""
			found = true
		}

		if !found {
			break
		}
		extracted = append(extracted, strings.TrimRight(comment, " \t\r"))
		if !strings.Contains(line, "/*") {
			break
		}
	}
	return line, extracted, inComment
}

// stripLineComment splits a trailing "// ..." comment off line, returning
// the code portion, the comment text, and the raw comment text (with its
// original leading whitespace width recovered from originalLine, so callers
// can faithfully re-emit indentation).
func stripLineComment(line, originalLine string) (code string, comment string, raw string, found bool) {
	pos := strings.Index(line, "//")
	if pos == -1 {
		return line, "", "", false
	}
	comment = line[pos+2:]
	code = line[:pos]

	rawPos := strings.Index(originalLine, "//")
	if rawPos == -1 {
		return code, comment, "", true
	}
	whitespace := len(originalLine[:rawPos]) - len(strings.TrimRight(originalLine[:rawPos], " \t"))
	start := rawPos - whitespace
	if start < 0 {
		start = 0
	}
	raw = strings.TrimRight(originalLine[start:], " \t\r")
	return code, comment, raw, true
}
