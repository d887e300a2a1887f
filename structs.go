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
	"regexp"
	"strings"
)

var (
	multiDeclaratorPattern = regexp.MustCompile(`^(\s*\w+)\s*([\w,\s\[\]*\d]*);$`)
	singleFieldPattern     = regexp.MustCompile(`^([^=.]*\s\**)(\w+);$`)
	arrayFieldPattern      = regexp.MustCompile(`^(.*\s\*?)(\w+)\[\s*(\w+)?\s*\];$`)
	specialCloseBracePattern = regexp.MustCompile(`^}\s*(\w*);$`)
)

// parseStructs recognizes `struct` record declarations and their bodies
// (§4.3 items 8, 10, 12). Only the `struct` keyword reaches this
// recognizer; a bare `class` declaration (not an ISteam interface) is
// dropped by parseClasses before a structural model is ever built for it.
func (p *Parser) parseStructs(s *parserState) {
	if s.enum != nil {
		return
	}

	if s.inSpecialStruct {
		p.continueSpecialStruct(s)
		return
	}

	if s.structVal != nil && (len(s.lineSplit) == 0 || s.lineSplit[0] != "struct") {
		if s.line == "};" {
			p.closeStruct(s)
		} else if s.union == nil {
			// A currently-open nested union claims body lines itself
			// (via visitUnion); without this guard the outer record
			// would also receive a duplicate copy of every union field.
			p.parseStructFields(s)
		}
		return
	}

	if len(s.lineSplit) == 0 || s.lineSplit[0] != "struct" {
		return
	}
	if len(s.lineSplit) < 2 {
		return
	}
	if strings.HasPrefix(s.lineSplit[1], "ISteam") {
		return
	}
	// Skip forward declares.
	if strings.HasSuffix(s.lineSplit[1], ";") {
		return
	}

	typeNameCandidate := s.lineSplit[1]

	if ignoredStructuralHelpers[typeNameCandidate] {
		p.IgnoredStructs = append(p.IgnoredStructs, &Record{Name: typeNameCandidate})
		return
	}

	if special, ok := specialStructs[typeNameCandidate]; ok {
		s.currentSpecialStruct = &special
		s.specialStructName = typeNameCandidate
		s.specialStructDepth = s.scopeDepth
		s.inSpecialStruct = true
		return
	}

	s.beginStruct()
	comments := s.consumeComments()

	outer := s.structVal
	name := strings.TrimSpace(s.lineSplit[1])
	s.structVal = &Record{
		Name:       name,
		Pack:       s.pre.currentPack(),
		Comment:    comments,
		ScopeDepth: s.scopeDepth,
		Outer:      outer,
	}
	if skippedStructs[name] {
		s.structVal.IsSkipped = true
	}
}

// continueSpecialStruct implements the scope-balanced skip over a special
// record's body (§4.3 item 8). Braces of nested bodies (e.g. a nested
// union) keep the skip open; it ends at the `}` line that closes the
// record's own brace, i.e. the one seen while the scope depth is one above
// the depth at which the record was entered.
func (p *Parser) continueSpecialStruct(s *parserState) {
	if strings.HasPrefix(s.line, "}") && s.scopeDepth == s.specialStructDepth+1 {
		if s.structVal != nil {
			if m := specialCloseBracePattern.FindStringSubmatch(s.line); m != nil && m[1] != "" {
				s.structVal.Fields = append(s.structVal.Fields, &Field{
					Name:     m[1],
					TypeText: s.specialStructName,
				})
			}
		}
		s.inSpecialStruct = false
		s.currentSpecialStruct = nil
		s.specialStructName = ""
	}
}

// closeStruct finalizes the record at `};`, honoring the CSteamID-style
// continuation policy and restoring the outer record in the parser state
// (§4.3 item 12).
func (p *Parser) closeStruct(s *parserState) {
	if line, ok := continuationPolicy[s.structVal.Name]; ok && line == s.lineNum {
		return
	}

	s.structVal.EndComment = s.consumeComments()

	if s.callbackID != nil {
		s.structVal.CallbackID = s.callbackID
		if !s.structVal.IsSkipped {
			s.file.Callbacks = append(s.file.Callbacks, s.structVal)
		} else {
			p.IgnoredStructs = append(p.IgnoredStructs, s.structVal)
		}
		s.callbackID = nil
	} else if s.structVal.IsSkipped {
		p.IgnoredStructs = append(p.IgnoredStructs, s.structVal)
	} else {
		s.file.Structs = append(s.file.Structs, s.structVal)
	}

	s.isClassLikeStruct = nil
	s.endComplexType()

	current := s.structVal
	if current.Outer != nil {
		current.Outer.NestedStruct = append(current.Outer.NestedStruct, current)
	}
	if _, ok := specialStructs[current.Name]; ok {
		current.PacksizeAware = false
	}

	s.structVal = current.Outer
}

// parseStructFields handles one member line of an open struct or union body
// (§4.3 item 10), shared between parseStructs and visitUnion.
func (p *Parser) parseStructFields(s *parserState) {
	comments := s.consumeComments()

	if strings.HasPrefix(s.line, "enum") {
		return
	}
	if strings.HasPrefix(s.line, "friend ") {
		return
	}
	if s.line == "{" {
		return
	}

	if strings.Contains(s.line, ",") {
		m := multiDeclaratorPattern.FindStringSubmatch(s.line)
		if m == nil {
			return
		}
		mainType := strings.TrimSpace(m[1])
		for _, varName := range strings.Split(m[2], ",") {
			p.tryMatchField(mainType+" "+strings.TrimSpace(varName)+";", s, comments)
		}
		return
	}

	p.tryMatchField(s.line, s, comments)
}

// tryMatchField matches one non-bitfield declarator line against the
// single-value and array field patterns, discarding mis-parses the same
// way the original does (any captured `(`, `)`, `*` in the name, or brace
// characters anywhere).
func (p *Parser) tryMatchField(line string, s *parserState, comments Comment) {
	if strings.Contains(line, ":") {
		p.diag.warn(recordOrUnionName(s)+" contains bitfield, skipping", s.file.Name, s.lineNum, s.line)
		p.abandonCurrentRecord(s)
		return
	}

	// A currently-open union claims the field, even when a struct is also
	// open around it (the union body's own fields, never the enclosing
	// record's).
	var target *Record
	var unionTarget *Union
	if s.union != nil {
		unionTarget = s.union
	} else {
		target = s.structVal
	}

	var fieldType, fieldName string
	var arraySizeText *string

	if m := singleFieldPattern.FindStringSubmatch(line); m != nil {
		fieldType = strings.TrimRight(m[1], " \t")
		fieldName = m[2]
	} else if m := arrayFieldPattern.FindStringSubmatch(line); m != nil {
		fieldType = strings.TrimRight(m[1], " \t")
		fieldName = m[2]
		if m[3] != "" {
			v := m[3]
			arraySizeText = &v
		}
	} else {
		return
	}

	if strings.ContainsAny(fieldName, "()*{}") || strings.ContainsAny(fieldType, "(){}") {
		return
	}

	field := &Field{Name: fieldName, TypeText: fieldType, ArraySizeText: arraySizeText, Comment: comments}
	if target != nil {
		target.Fields = append(target.Fields, field)
	} else if unionTarget != nil {
		unionTarget.Fields = append(unionTarget.Fields, field)
	}
}

func recordOrUnionName(s *parserState) string {
	if s.structVal != nil {
		return s.structVal.Name
	}
	if s.union != nil {
		return s.union.Name
	}
	return ""
}

// abandonCurrentRecord implements the §8 S6 "bitfield abandon" scenario:
// the entire enclosing record (not just the offending field) is dropped
// into ignoredStructs and never reaches the file's structs/callbacks list.
func (p *Parser) abandonCurrentRecord(s *parserState) {
	if s.structVal != nil {
		s.structVal.IsSkipped = true
	}
}
