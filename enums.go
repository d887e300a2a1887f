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

var anonEnumConstantPattern = regexp.MustCompile(`^enum \{ (.*) = (.*) \};$`)
var enumFieldPattern = regexp.MustCompile(`^(\w+,?)([ \t]*)=?([ \t]*)(.*)$`)

// parseEnums recognizes a block `enum NAME { ... };` and the single-line
// anonymous forms, including the `k_iCallback` sentinel which instead sets
// the enclosing struct's callback id (§4.3 item 6).
func (p *Parser) parseEnums(s *parserState) {
	if s.enum != nil {
		switch {
		case s.line == "{":
			return
		case strings.HasSuffix(s.line, "};"):
			s.enum.EndComment = s.consumeComments()
			if s.enum.Name != "" {
				s.file.Enums = append(s.file.Enums, s.enum)
			}
			s.endComplexType()
			s.enum = nil
			return
		default:
			p.parseEnumFields(s)
			return
		}
	}

	if len(s.lineSplit) == 0 || s.lineSplit[0] != "enum" {
		return
	}

	comments := s.consumeComments()

	if containsToken(s.lineSplit, "};") {
		// Currently only skips one multi-field anonymous enum in
		// CCallbackBase, and a pair of conflicting same-named anonymous
		// enums in steamnetworkingtypes.h.
		if strings.Contains(s.line, ",") || s.file.Name == "steamnetworkingtypes.h" {
			return
		}
		// Skips lines folded into a macro continuation.
		if s.lineSplit[len(s.lineSplit)-1] == "\\" {
			return
		}

		if s.structVal != nil {
			m := anonEnumConstantPattern.FindStringSubmatch(s.line)
			if m != nil {
				if m[1] == "k_iCallback" {
					v := m[2]
					s.callbackID = &v
					return
				}
			}
		}

		if len(s.lineSplit) > 4 {
			s.file.Constants = append(s.file.Constants, &Constant{
				Name: s.lineSplit[2], Value: s.lineSplit[4], Type: "int", Comment: comments,
			})
		}
		return
	}

	if len(s.lineSplit) == 1 || (len(s.lineSplit) >= 2 && s.lineSplit[1] == "{") {
		s.beginEnum()
		s.enum = &Enum{Comment: comments, Size: 4, Align: 4}
		return
	}

	s.beginEnum()
	s.enum = &Enum{Name: s.lineSplit[1], Comment: comments, Size: 4, Align: 4}
}

// parseEnumFields handles one member line of an open enum block. An
// anonymous enum demotes every field to a file-level Constant instead of an
// EnumField (§4.3 item 6).
func (p *Parser) parseEnumFields(s *parserState) {
	m := enumFieldPattern.FindStringSubmatch(s.line)
	comments := s.consumeComments()
	if m == nil {
		return
	}

	value := m[4]
	if strings.HasSuffix(s.line, "=") {
		value = "="
	}

	if s.enum.Name == "" {
		if len(s.enum.Comment.PreComments) > 0 || len(s.enum.Comment.RawPreComments) > 0 {
			comments.PreComments = s.enum.Comment.PreComments
			comments.RawPreComments = s.enum.Comment.RawPreComments
			s.enum.Comment = Comment{}
		}
		s.file.Constants = append(s.file.Constants, &Constant{
			Name: m[1], Value: strings.TrimSuffix(value, ","), Type: "int", Comment: comments,
		})
		return
	}

	field := EnumField{Name: m[1]}
	if value != "" {
		field.PreSpacing = m[2]
		field.PostSpacing = m[3]
		field.Value = value
	}
	field.Comment = comments
	s.enum.Fields = append(s.enum.Fields, field)
}
