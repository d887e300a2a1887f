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

import "strings"

// parseInterfaces recognizes `class ISteam...` and, while one is open,
// delegates every subsequent line to the function sub-parser (§4.4).
// Forward declares and matchmaking "Response" classes never open an
// Interface.
func (p *Parser) parseInterfaces(s *parserState) {
	if strings.HasPrefix(s.line, "class ISteam") {
		comments := s.consumeComments()
		if len(s.lineSplit) > 1 {
			name := s.lineSplit[1]
			if strings.HasSuffix(name, ";") || strings.HasSuffix(name, "Response") {
				return
			}
			s.interfaceVal = &Interface{Name: name, Comment: comments}
		}
	}

	if s.interfaceVal != nil {
		p.parseInterfaceFunctions(s)
	}
}

// parseInterfaceFunctionAttributes collects any of the closed set of
// function attribute macros (§6) prefixing the current line onto the
// pending-attribute queue for the next Function opened.
func (p *Parser) parseInterfaceFunctionAttributes(s *parserState) {
	for _, a := range funcAttribNames {
		if !strings.HasPrefix(s.line, a) {
			continue
		}
		open := strings.Index(s.line, "(")
		closeIdx := strings.LastIndex(s.line, ")")
		if open == -1 || closeIdx == -1 || closeIdx < open {
			continue
		}
		s.functionAttributes = append(s.functionAttributes, &FunctionAttribute{
			Name:  s.line[:open],
			Value: strings.TrimSpace(s.line[open+1 : closeIdx]),
		})
	}
}

// parseInterfaceFunctions drives the §4.4 function sub-state-machine one
// line at a time. Each physical line is expected to carry a whole
// declaration (the SDK always writes interface methods on one line), so
// the per-argument accumulator is local to this call, matching the
// original's own per-call locals.
func (p *Parser) parseInterfaceFunctions(s *parserState) {
	p.parseInterfaceFunctionAttributes(s)

	if strings.HasPrefix(s.line, "STEAM_PRIVATE_API") {
		s.inPrivate = true
		idx := strings.Index(s.line, "(")
		s.line = strings.TrimSpace(s.line[idx+1:])
		if len(s.lineSplit) > 0 {
			s.lineSplit = s.lineSplit[1:]
		}
	}

	wasPrivate := s.inPrivate
	if s.inPrivate && strings.HasSuffix(s.line, ")") {
		s.inPrivate = false
		s.line = strings.TrimSpace(strings.TrimSuffix(s.line, ")"))
		if len(s.lineSplit) > 0 {
			s.lineSplit = s.lineSplit[:len(s.lineSplit)-1]
		}
	}

	if s.function == nil && !(strings.HasPrefix(s.line, "virtual") || strings.HasPrefix(s.line, "inline")) {
		return
	}
	if strings.Contains(s.line, "~") {
		return
	}

	args := ""
	var attr *ArgAttribute

	if s.function == nil {
		c := s.consumeComments()
		s.function = &Function{
			IfStatement: s.pre.topConditional(),
			Comment:     c,
			LineComment: c.LineComment,
			Private:     wasPrivate,
			Attributes:  s.functionAttributes,
		}
		s.functionAttributes = nil
	}

	tokens := s.lineSplit

tokenLoop:
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if s.fState == funcStateReturnType {
			switch {
			case token == "virtual" || token == "inline":
				continue tokenLoop
			case strings.HasPrefix(token, "*"):
				s.function.ReturnType += "*"
				token = token[1:]
				s.fState = funcStateName
			case strings.Contains(token, "("):
				s.function.ReturnType = strings.TrimSpace(s.function.ReturnType)
				s.fState = funcStateName
			default:
				s.function.ReturnType += token + " "
				continue tokenLoop
			}
		}

		if s.fState == funcStateName {
			if idx := strings.Index(token, "("); idx >= 0 {
				s.function.Name = token[:idx]
			} else {
				s.function.Name = token
			}

			last := token[len(token)-1]
			switch {
			case last == ')':
				s.fState = funcStateTrailer
			case last == ';':
				s.fState = funcStateReturnType
				s.interfaceVal.Functions = append(s.interfaceVal.Functions, s.function)
				s.function = nil
				break tokenLoop
			case !strings.HasSuffix(token, "("):
				if p.settings.WarnSpacing {
					p.diag.warn("Function is missing whitespace between the opening parentheses and first arg.", s.file.Name, s.lineNum, s.line)
				}
				token = strings.SplitN(token, "(", 2)[1]
				s.fState = funcStateArgs
			default:
				s.fState = funcStateArgs
				continue tokenLoop
			}
		}

		if s.fState == funcStateArgs {
			isAttrib := false
			for _, a := range argAttribNames {
				if strings.HasPrefix(token, a) {
					attr = &ArgAttribute{}
					isAttrib = true
					break
				}
			}
			if isAttrib {
				open := strings.Index(token, "(")
				attr.Name = token[:open]
				if len(token) > open+1 {
					if strings.HasSuffix(token, ")") {
						attr.Value = token[open+1 : len(token)-1]
						continue tokenLoop
					}
					attr.Value = token[open+1:]
				}
				s.fState = funcStateAttribValue
				continue tokenLoop
			}

			switch {
			case strings.HasPrefix(token, "**"):
				args += token[:2]
				token = token[2:]
			case strings.HasPrefix(token, "*"), strings.HasPrefix(token, "&"):
				args += token[:1]
				token = token[1:]
			}

			if len(token) == 0 {
				continue tokenLoop
			}

			switch {
			case strings.HasPrefix(token, ")"):
				if args != "" {
					shrink, nameOffset := 1, 0
					prev := tokens[i-1]
					switch {
					case strings.Contains(prev, "**"):
						shrink, nameOffset = -1, 2
					case strings.Contains(prev, "*") || strings.Contains(prev, "&"):
						shrink, nameOffset = 0, 1
					}
					s.function.Args = append(s.function.Args, &Arg{
						TypeText:  strings.TrimSpace(args[:len(args)-len(prev)-shrink]),
						Name:      prev[nameOffset:],
						Attribute: attr,
					})
					args = ""
					attr = nil
				}
				s.fState = funcStateTrailer

			case strings.HasSuffix(token, ")"):
				if p.settings.WarnSpacing {
					p.diag.warn("Function is missing whitespace between the closing parentheses and first arg.", s.file.Name, s.lineNum, s.line)
				}
				s.function.Args = append(s.function.Args, &Arg{
					TypeText:  strings.TrimSpace(args),
					Name:      token[:len(token)-1],
					Attribute: attr,
				})
				args = ""
				attr = nil
				s.fState = funcStateTrailer

			case strings.HasSuffix(token, ","):
				nameOffset := 0
				body := token[:len(token)-1]
				if strings.Contains(body, "*") || strings.Contains(body, "&") {
					nameOffset = 1
				}
				s.function.Args = append(s.function.Args, &Arg{
					TypeText:  strings.TrimSpace(args),
					Name:      body[nameOffset:],
					Attribute: attr,
				})
				args = ""
				attr = nil

			case token == "=":
				shrink, nameOffset := 1, 0
				prev := tokens[i-1]
				if strings.Contains(prev, "*") || strings.Contains(prev, "&") {
					shrink, nameOffset = 0, 1
				}
				var def *string
				if i+1 < len(tokens) {
					v := strings.TrimSuffix(tokens[i+1], ",")
					def = &v
				}
				s.function.Args = append(s.function.Args, &Arg{
					TypeText:  strings.TrimSpace(args[:len(args)-len(prev)-shrink]),
					Name:      prev[nameOffset:],
					Default:   def,
					Attribute: attr,
				})
				args = ""
				attr = nil
				i++ // mirrors next(linesplit_iter, None): skip the consumed default-value token

			default:
				args += token + " "
			}
			continue tokenLoop
		}

		if s.fState == funcStateTrailer {
			if strings.HasSuffix(token, ";") {
				s.fState = funcStateReturnType
				s.interfaceVal.Functions = append(s.interfaceVal.Functions, s.function)
				s.function = nil
				break tokenLoop
			}
			continue tokenLoop
		}

		if s.fState == funcStateAttribValue {
			if strings.HasSuffix(token, ")") {
				attr.Value += token[:len(token)-1]
				s.fState = funcStateArgs
			} else {
				attr.Value += token
			}
			continue tokenLoop
		}
	}
}
