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

var constantPattern = regexp.MustCompile(`^.*const\s+(.*)\s+(\w+)\s+=\s+(.*);$`)

// parseConstants recognizes `const`/`static const` declarations at scope
// depth <= 1 (§4.3 item 5). Declarations split across lines, where the
// first argument on the continuation starts with "const", are not
// currently supported and fall through untouched.
func (p *Parser) parseConstants(s *parserState) {
	if len(s.lineSplit) == 0 {
		return
	}
	if s.lineSplit[0] != "const" && !strings.HasPrefix(s.line, "static const") {
		return
	}
	if s.scopeDepth > 1 {
		return
	}

	comments := s.consumeComments()

	if !containsToken(s.lineSplit, "=") {
		return
	}

	m := constantPattern.FindStringSubmatch(s.line)
	if m == nil {
		return
	}

	s.file.Constants = append(s.file.Constants, &Constant{
		Name:    m[2],
		Value:   m[3],
		Type:    m[1],
		Comment: comments,
	})
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}
