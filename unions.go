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
	"strings"
)

// visitUnion recognizes a `union [NAME] { ... };` block, named or anonymous
// (§4.3 item 7). An anonymous union gets a generated name derived from its
// file and 1-based line number, and a synthesized field of that generated
// type is appended to the enclosing record so its layout is still
// reachable from the outer struct.
func (p *Parser) visitUnion(s *parserState) {
	if s.enum != nil {
		return
	}

	if s.union != nil && (len(s.lineSplit) == 0 || s.lineSplit[0] != "union") {
		switch {
		case s.line == "{":
			// some unions put the open brace on the next line
			return
		case s.line == "};":
			s.union.EndComment = s.consumeComments()
			s.file.Unions = append(s.file.Unions, s.union)
			s.endComplexType()
			s.union = nil
		default:
			p.parseStructFields(s)
		}
		return
	}

	if s.union != nil {
		return
	}

	if len(s.lineSplit) == 0 || s.lineSplit[0] != "union" {
		return
	}

	// Skip forward declares.
	if len(s.lineSplit) >= 2 && strings.HasSuffix(s.lineSplit[1], ";") {
		return
	}

	s.beginUnion()

	var typeName string
	isUnnamed := true
	if len(s.lineSplit) >= 2 && s.lineSplit[1] != "{" {
		typeName = s.lineSplit[1]
		isUnnamed = false
	} else {
		typeName = fmt.Sprintf("union__%s_%d", strings.TrimSuffix(s.file.Name, ".h"), s.lineNum+1)
	}

	s.union = &Union{Name: typeName, IsUnnamed: isUnnamed, Pack: s.pre.currentPack(), Outer: s.structVal}
	if s.union.Outer != nil {
		s.union.Outer.Fields = append(s.union.Outer.Fields, &Field{
			Name:     "unnamed_field_" + typeName,
			TypeText: typeName,
		})
	}
}
