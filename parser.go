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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Parser is the output surface of §6: an ordered list of per-file models,
// the resolver, and the classifier's headline result.
type Parser struct {
	Files                []*SourceFile
	Typedefs             []*Typedef
	IgnoredStructs       []*Record
	PackSizeAwareStructs []string

	settings Settings
	diag     *diagnosticSink
}

// Diagnostics returns every Warning/Unhandled/Skip diagnostic recorded
// across the whole parse (§7).
func (p *Parser) Diagnostics() []Diagnostic { return p.diag.diagnostics }

// Parse ingests every eligible header in dir (§6 input surface: files
// ending ".h", not in the skip list, processed in lexicographic order) and
// returns the resulting model.
func Parse(dir string, opts ...Option) (*Parser, error) {
	settings := NewSettings(opts...)
	p := &Parser{
		settings: settings,
		diag:     newDiagnosticSink(settings.Logger),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("swparse: reading header directory %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".h") || skippedFiles[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		file := &SourceFile{Name: name}
		p.Files = append(p.Files, file)

		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("swparse: reading header %q: %w", path, err)
		}

		lines, hadBOM := decodeLines(raw)
		if hadBOM && settings.WarnUTF8BOM {
			p.diag.warn("File contains a UTF8 BOM.", name, 0, "")
		}

		s := newParserState(file, lines)
		p.parseFile(s)

		if !s.pre.balanced() {
			p.diag.warn("#pragma pack stack is not balanced at end of file", name, len(lines), "")
		}
	}

	p.populateTypedefLayouts()

	if settings.FakeGameServerInterfaces {
		p.applyGameServerFaking()
	}

	p.findOutPackSizeAwareStructs()

	return p, nil
}

// parseFile runs the line-oriented state machine over one file's lines,
// advancing s one logical line at a time (§4.3).
func (p *Parser) parseFile(s *parserState) {
	for lineNum, raw := range s.lines {
		s.line = strings.TrimRight(raw, " \t\r\n")
		s.originalLine = s.line
		s.lineNum = lineNum

		p.parseComments(s)

		// Comments get removed from the line, often leaving blank lines,
		// thus we check for blank only after comment parsing.
		if s.line == "" {
			continue
		}

		s.lineSplit = strings.Fields(s.line)

		if s.inHeader {
			p.parseHeader(s)
		}

		if p.parseSkippedLines(s) {
			s.consumeComments()
			continue
		}

		p.parsePreprocessor(s)
		p.parseTypedefs(s)
		p.parseConstants(s)
		p.parseEnums(s)
		p.visitUnion(s)
		p.parseStructs(s)
		p.parseCallbackMacros(s)
		p.parseInterfaces(s)

		if s.line == "" {
			continue
		}

		p.parseClasses(s)
		p.parseScope(s)
	}
}

func (p *Parser) parseComments(s *parserState) {
	p.parseCommentsMultiline(s)
	p.parseCommentsSingleline(s)
	s.line = strings.TrimSpace(s.line)
}

func (p *Parser) parseCommentsMultiline(s *parserState) {
	cleaned, extracted, stillOpen := stripMultilineComment(s.line, s.inMultilineComment)
	s.line = cleaned
	s.inMultilineComment = stillOpen
	s.comments = append(s.comments, extracted...)
}

func (p *Parser) parseCommentsSingleline(s *parserState) {
	if s.lineComment != nil {
		s.comments = append(s.comments, *s.lineComment)
		raw := ""
		if s.rawLineComment != nil {
			raw = *s.rawLineComment
		}
		s.rawComments = append(s.rawComments, RawCommentLine{Text: raw})
		s.rawLineComment = nil
		s.lineComment = nil
	}

	if s.line == "" {
		s.rawComments = append(s.rawComments, RawCommentLine{Blank: true})
		return
	}

	code, comment, raw, found := stripLineComment(s.line, s.originalLine)
	if found {
		s.lineComment = &comment
		s.line = code
		s.rawLineComment = &raw
	}
}

func (p *Parser) parseHeader(s *parserState) {
	if s.line != "" {
		s.file.Header = append(s.file.Header, s.comments...)
		s.comments = nil
		s.inHeader = false
	}
}

// parseSkippedLines implements §4.1/§4.2's skip contract: macro
// continuations, the blacklisted marker lines, bare "inline" lines outside
// an interface, and lines nested inside a "!defined(API_GEN)" gate.
func (p *Parser) parseSkippedLines(s *parserState) bool {
	if s.pre.containsConditional("!defined(API_GEN)") {
		switch {
		case strings.HasPrefix(s.line, "#if"):
			s.pre.pushIf("ugh")
		case strings.HasPrefix(s.line, "#endif"):
			s.pre.popEndif()
		}
		return true
	}

	if strings.HasSuffix(s.line, "\\") {
		s.inMultilineMacro = true
		return true
	}

	if s.inMultilineMacro {
		s.inMultilineMacro = false
		return true
	}

	if isSkippedLine(s.line) {
		return true
	}

	if s.interfaceVal == nil && strings.Contains(s.line, "inline") {
		return true
	}

	return false
}

func (p *Parser) parseClasses(s *parserState) {
	if len(s.lineSplit) == 0 || s.lineSplit[0] != "class" {
		return
	}
	if strings.HasPrefix(s.line, "class ISteam") {
		return
	}
	s.consumeComments()
}

func (p *Parser) parseScope(s *parserState) {
	if strings.Contains(s.line, "{") {
		s.scopeDepth++
		if strings.Count(s.line, "{") > 1 {
			p.diag.warn("Multiple occurrences of '{'", s.file.Name, s.lineNum, s.line)
		}
	}

	if strings.Contains(s.line, "}") {
		s.scopeDepth--

		if s.interfaceVal != nil && s.scopeDepth == 0 {
			s.file.Interfaces = append(s.file.Interfaces, s.interfaceVal)
			s.interfaceVal = nil
		}

		if s.scopeDepth < 0 {
			p.diag.warn("scopeDepth is less than 0!", s.file.Name, s.lineNum, s.line)
		}
		if strings.Count(s.line, "}") > 1 {
			p.diag.warn("Multiple occurrences of '}'", s.file.Name, s.lineNum, s.line)
		}
	}
}
