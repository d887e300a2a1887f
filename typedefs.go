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

// parseTypedefs recognizes a top-level `typedef TYPE NAME;` (§4.3 item 4).
// Typedefs nested in a class/struct, function-pointer typedefs (containing
// "(" or "["), and anything not ending in ";" (e.g. the multi-line
// ValvePackingSentinel_t form) are deliberately unsupported and skipped.
func (p *Parser) parseTypedefs(s *parserState) {
	if len(s.lineSplit) == 0 || s.lineSplit[0] != "typedef" {
		return
	}

	comments := s.consumeComments()

	if s.scopeDepth > 0 {
		if p.settings.PrintSkippedTypedefs {
			p.diag.debug(p.settings, "Skipped typedef because it's in a class or struct: "+s.line)
		}
		return
	}
	if strings.ContainsAny(s.line, "([") {
		if p.settings.PrintSkippedTypedefs {
			p.diag.debug(p.settings, "Skipped typedef because it contains '(' or '[': "+s.line)
		}
		return
	}
	if !strings.HasSuffix(s.line, ";") {
		if p.settings.PrintSkippedTypedefs {
			p.diag.debug(p.settings, "Skipped typedef because it does not end with ';': "+s.line)
		}
		return
	}

	name := strings.TrimSuffix(s.lineSplit[len(s.lineSplit)-1], ";")
	typeText := strings.Join(s.lineSplit[1:len(s.lineSplit)-1], " ")
	if strings.HasPrefix(name, "*") {
		typeText += " *"
		name = name[1:]
	}

	typedef := &Typedef{
		Name:     name,
		TypeText: typeText,
		Filename: s.file.Name,
		Comment:  comments,
	}
	if resolved := p.resolveTypeInfo(typeText); resolved != nil {
		typedef.Size = resolved.Size
		typedef.Align = resolved.Align
	}

	p.Typedefs = append(p.Typedefs, typedef)
	s.file.Typedefs = append(s.file.Typedefs, typedef)
}

// populateTypedefLayouts fixes up every typedef's size/alignment by
// chasing its alias chain to a primitive (or the intptr sentinel for any
// pointer spelling). This is the corrected form of the original's
// namesake pass: §9(c) flags that the original returned from its loop on
// the first primitive match, silently leaving every later typedef
// unresolved. Here every typedef in p.Typedefs is visited.
func (p *Parser) populateTypedefLayouts() {
	for _, td := range p.Typedefs {
		size, align, ok := p.resolveAliasChain(td.TypeText, map[string]bool{})
		if !ok {
			p.diag.warn(
				fmt.Sprintf("typedef %q's underlying type %q is not in primitive list", td.Name, td.TypeText),
				td.Filename, 0, "",
			)
			continue
		}
		td.Size = size
		td.Align = align
	}
}

// resolveAliasChain walks typeName through primitive lookup, the intptr
// short-circuit for any pointer spelling, and other typedefs by name,
// until it bottoms out at a primitive. seen guards against alias cycles.
func (p *Parser) resolveAliasChain(typeName string, seen map[string]bool) (Extent, Extent, bool) {
	if prim, ok := primitiveTypes[typeName]; ok {
		return prim.Size, prim.Align, true
	}
	if strings.Contains(typeName, "*") {
		return IntPtr(), IntPtr(), true
	}
	if seen[typeName] {
		return Extent{}, Extent{}, false
	}
	seen[typeName] = true

	for _, other := range p.Typedefs {
		if other.Name == typeName {
			return p.resolveAliasChain(other.TypeText, seen)
		}
	}
	return Extent{}, Extent{}, false
}
