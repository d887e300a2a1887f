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
	callbackBeginPattern       = regexp.MustCompile(`^STEAM_CALLBACK_BEGIN\(\s?(\w+),\s?(.*?)\s*\)`)
	callbackMemberArrayPattern = regexp.MustCompile(`^STEAM_CALLBACK_MEMBER_ARRAY\(.*,\s+(.*?)\s*,\s*(\w*)\s*,\s*(\d*)\s*\)`)
	callbackMemberPattern      = regexp.MustCompile(`^STEAM_CALLBACK_MEMBER\(.*,\s+(.*?)\s*,\s*(\w*)\[?(\d+)?\]?\s*\)`)
)

// parseCallbackMacros recognizes the STEAM_CALLBACK_BEGIN/_MEMBER[_ARRAY]/_END
// macro family (§4.3 item 9), which declares a callback Record out-of-line
// from the usual struct syntax.
func (p *Parser) parseCallbackMacros(s *parserState) {
	if s.callbackMacro != nil {
		comments := s.consumeComments()

		switch {
		case strings.HasPrefix(s.line, "STEAM_CALLBACK_END("):
			s.file.Callbacks = append(s.file.Callbacks, s.callbackMacro)
			s.callbackMacro = nil

		case strings.HasPrefix(s.line, "STEAM_CALLBACK_MEMBER_ARRAY"):
			m := callbackMemberArrayPattern.FindStringSubmatch(s.line)
			if m == nil {
				p.diag.unhandled("malformed STEAM_CALLBACK_MEMBER_ARRAY", s.file.Name, s.lineNum, s.line)
				return
			}
			var arraySize *string
			if m[3] != "" {
				v := m[3]
				arraySize = &v
			}
			s.callbackMacro.Fields = append(s.callbackMacro.Fields, &Field{
				Name: m[2], TypeText: m[1], ArraySizeText: arraySize, Comment: comments,
			})

		case strings.HasPrefix(s.line, "STEAM_CALLBACK_MEMBER"):
			m := callbackMemberPattern.FindStringSubmatch(s.line)
			if m == nil {
				p.diag.unhandled("malformed STEAM_CALLBACK_MEMBER", s.file.Name, s.lineNum, s.line)
				return
			}
			var arraySize *string
			if m[3] != "" {
				v := m[3]
				arraySize = &v
			}
			s.callbackMacro.Fields = append(s.callbackMacro.Fields, &Field{
				Name: m[2], TypeText: m[1], ArraySizeText: arraySize, Comment: comments,
			})

		default:
			p.diag.unhandled("Unexpected line in Callback Macro", s.file.Name, s.lineNum, s.line)
		}
		return
	}

	if !strings.HasPrefix(s.line, "STEAM_CALLBACK_BEGIN") {
		return
	}

	comments := s.consumeComments()

	m := callbackBeginPattern.FindStringSubmatch(s.line)
	if m == nil {
		p.diag.unhandled("malformed STEAM_CALLBACK_BEGIN", s.file.Name, s.lineNum, s.line)
		return
	}

	id := m[2]
	s.callbackMacro = &Record{
		Name:       m[1],
		Pack:       s.pre.currentPack(),
		Comment:    comments,
		ScopeDepth: s.scopeDepth,
		CallbackID: &id,
	}
}
