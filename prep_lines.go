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

// parsePreprocessor recognizes the preprocessor directives of §4.2: it
// never evaluates a condition, only tracks the conditional and pack
// stacks and records #include/#define data.
func (p *Parser) parsePreprocessor(s *parserState) {
	if !strings.HasPrefix(s.line, "#") {
		return
	}

	switch {
	case strings.HasPrefix(s.line, "#else"):
		s.pre.pushElse()

	case strings.HasPrefix(s.line, "#include"):
		s.consumeComments()
		if len(s.lineSplit) > 1 {
			includeFile := s.lineSplit[1]
			if len(includeFile) >= 2 {
				includeFile = includeFile[1 : len(includeFile)-1]
			}
			s.file.Includes = append(s.file.Includes, includeFile)
		}

	case strings.HasPrefix(s.line, "#ifdef"):
		if len(s.lineSplit) > 1 {
			s.pre.pushIfdef(s.lineSplit[1])
		}

	case strings.HasPrefix(s.line, "#ifndef"):
		if len(s.lineSplit) > 1 {
			s.pre.pushIfndef(s.lineSplit[1])
		}

	case strings.HasPrefix(s.line, "#if"):
		s.pre.pushIf(strings.TrimSpace(s.line[3:]))

	case strings.HasPrefix(s.line, "#endif"):
		if !s.pre.popEndif() {
			p.diag.warn("#endif without matching #if", s.file.Name, s.lineNum, s.line)
		}

	case strings.HasPrefix(s.line, "#define"):
		comments := s.consumeComments()
		if p.settings.WarnIncludeGuardName && s.pre.topConditional() == "" && len(s.lineSplit) > 1 {
			expected := strings.ReplaceAll(strings.ToUpper(s.file.Name), ".", "_")
			if s.lineSplit[1] != expected {
				p.diag.warn("Include guard does not match the file name.", s.file.Name, s.lineNum, s.line)
			}
		}
		if len(s.lineSplit) > 2 {
			nameIdx := strings.Index(s.line, s.lineSplit[1])
			afterName := nameIdx + len(s.lineSplit[1])
			valueIdx := strings.Index(s.line, s.lineSplit[2])
			spacing := ""
			if valueIdx > afterName {
				spacing = s.line[afterName:valueIdx]
			}
			s.file.Defines = append(s.file.Defines, &Define{
				Name:    s.lineSplit[1],
				Value:   s.lineSplit[2],
				Spacing: spacing,
				Comment: comments,
			})
		} else if p.settings.PrintUnusedDefines {
			p.diag.debug(p.settings, "Unused Define: "+s.line)
		}

	case strings.HasPrefix(s.line, "#pragma pack"):
		p.parsePragmaPack(s)

	case strings.HasPrefix(s.line, "#pragma"),
		strings.HasPrefix(s.line, "#error"),
		strings.HasPrefix(s.line, "#warning"),
		strings.HasPrefix(s.line, "#elif"),
		strings.HasPrefix(s.line, "#undef"):
		// recognized, deliberately ignored

	default:
		p.diag.unhandled("Preprocessor", s.file.Name, s.lineNum, s.line)
	}
}

func (p *Parser) parsePragmaPack(s *parserState) {
	switch {
	case strings.Contains(s.line, "push"):
		commaIdx := strings.Index(s.line, ",")
		if commaIdx == -1 {
			return
		}
		arg := strings.TrimSpace(s.line[commaIdx+1 : len(s.line)-1])
		s.pre.pushPack(arg)

	case strings.Contains(s.line, "pop"):
		if !s.pre.popPack() {
			p.diag.warn("#pragma pack(pop) without matching push", s.file.Name, s.lineNum, s.line)
		}
	}
}
