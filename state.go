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

// complexType is the closed set of nested declaration kinds the parser can
// be inside of at any time (§9 Design Notes: "complex-type stack
// {struct|union|enum}").
type complexType int

const (
	complexStruct complexType = iota
	complexUnion
	complexEnum
)

// funcState is the interface/function sub-parser's explicit state (§4.4).
type funcState int

const (
	funcStateReturnType funcState = iota // 0
	funcStateName                        // 1
	funcStateArgs                        // 2
	funcStateTrailer                     // 3
	funcStateAttribValue                 // 4
)

// parserState is the one mutable state object the declaration parser
// advances line by line (§9 Design Notes: "one large state object with
// explicit state variables... Prefer an explicit enum-tagged state over
// call-stack recursion; each line is a transition.").
type parserState struct {
	file  *SourceFile
	lines []string

	line         string
	originalLine string
	lineSplit    []string
	lineNum      int // 0-based

	rawComments    []RawCommentLine
	comments       []string
	rawLineComment *string
	lineComment    *string

	pre *preprocessorTracker

	fState           funcState
	scopeDepth       int
	complexTypeStack []complexType

	interfaceVal  *Interface
	function      *Function
	enum          *Enum
	structVal     *Record
	union         *Union
	callbackMacro *Record

	inHeader           bool
	inMultilineComment bool
	inMultilineMacro   bool
	inPrivate          bool

	callbackID           *string
	isClassLikeStruct    *bool
	functionAttributes   []*FunctionAttribute
	currentSpecialStruct *primitiveType

	// inSpecialStruct tracks a scope-balanced skip over a special record's
	// body (§4.3 item 8): specialStructName/specialStructDepth identify what
	// is being skipped and at what enclosing depth it was entered.
	inSpecialStruct    bool
	specialStructName  string
	specialStructDepth int

	// argsAccum and pendingAttr are not read or written anywhere:
	// parseInterfaceFunctions keeps its per-argument accumulator and
	// pending argument attribute in locals.
	argsAccum   string
	pendingAttr *ArgAttribute

	// ignoredAPIGenDepth is not read or written anywhere: while a
	// !defined(API_GEN) block is skipped, parseSkippedLines counts nested
	// #if/#endif by pushing and popping placeholder frames on the
	// conditional stack, so inner conditionals don't prematurely pop the
	// outer gate (§4.2).
	ignoredAPIGenDepth int
}

func newParserState(file *SourceFile, lines []string) *parserState {
	return &parserState{
		file:    file,
		lines:   lines,
		pre:     newPreprocessorTracker(),
		inHeader: true,
	}
}

func (s *parserState) beginStruct() { s.complexTypeStack = append(s.complexTypeStack, complexStruct) }
func (s *parserState) beginUnion()  { s.complexTypeStack = append(s.complexTypeStack, complexUnion) }
func (s *parserState) beginEnum()   { s.complexTypeStack = append(s.complexTypeStack, complexEnum) }

func (s *parserState) endComplexType() {
	if len(s.complexTypeStack) > 0 {
		s.complexTypeStack = s.complexTypeStack[:len(s.complexTypeStack)-1]
	}
}

func (s *parserState) currentComplexTypeIs(k complexType) bool {
	if len(s.complexTypeStack) == 0 {
		return false
	}
	return s.complexTypeStack[len(s.complexTypeStack)-1] == k
}

func (s *parserState) complexDepth() int { return len(s.complexTypeStack) }

// consumeComments drains both the raw and semantic pending-comment FIFOs
// into a Comment bundle, matching the original's consume_comments.
func (s *parserState) consumeComments() Comment {
	c := Comment{
		RawPreComments: s.rawComments,
		PreComments:    s.comments,
		RawLineComment: s.rawLineComment,
		LineComment:    s.lineComment,
	}
	s.rawComments = nil
	s.comments = nil
	s.rawLineComment = nil
	s.lineComment = nil
	return c
}
