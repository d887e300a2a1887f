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

// wordSize is the pointer width of the single supported target ABI
// (64-bit LP64/LLP64-style). intptr-sized quantities always resolve to it.
const wordSize = 8

// ExtentKind distinguishes a concrete byte count from the "intptr" sentinel,
// which denotes a pointer-sized quantity under the supported ABI.
type ExtentKind int

const (
	ExtentConcrete ExtentKind = iota
	ExtentIntPtr
)

// Extent is a size or alignment value that may be a concrete byte count or
// the intptr sentinel (always 8 bytes/8-byte aligned on this ABI).
type Extent struct {
	Kind  ExtentKind
	Bytes int
}

// Concrete builds a fixed-size Extent.
func Concrete(n int) Extent { return Extent{Kind: ExtentConcrete, Bytes: n} }

// IntPtr is the pointer-sized Extent.
func IntPtr() Extent { return Extent{Kind: ExtentIntPtr, Bytes: wordSize} }

// IsIntPtr reports whether this Extent is the pointer-sized sentinel.
func (e Extent) IsIntPtr() bool { return e.Kind == ExtentIntPtr }

// Resolve returns the concrete byte count, substituting the word size for
// the intptr sentinel.
func (e Extent) Resolve() int {
	if e.Kind == ExtentIntPtr {
		return wordSize
	}
	return e.Bytes
}

// PackKind tags the closed set of per-record pack settings a declaration
// can carry (§4.2's heuristic contract).
type PackKind int

const (
	// PackNone means "no #pragma pack override in force" — the record
	// takes the layout engine's default alignment.
	PackNone PackKind = iota
	// PackValue is an explicit #pragma pack(push, N) value.
	PackValue
	// PackPlatformABIDefault is the [4]-on-the-stack heuristic sentinel:
	// the parser cannot tell whether a later #ifdef-gated pop genuinely
	// restores the platform default, so the record is marked sequential
	// and excluded from pack-sensitivity analysis (§4.2, §4.6).
	PackPlatformABIDefault
)

// Pack is the tagged pack setting carried by a Record or Union.
type Pack struct {
	Kind  PackKind
	Value int // meaningful only when Kind == PackValue
}

func (p Pack) IsSequential() bool { return p.Kind == PackPlatformABIDefault }

// RawCommentLine is one entry of a Comment's raw (pre-strip) history: either
// the original text of a trailing "// ..." comment line (with its leading
// whitespace width intact, for faithful re-emission) or a blank-line marker.
type RawCommentLine struct {
	Blank bool
	Text  string
}

// Comment bundles the leading (block/line) comments that preceded a
// declaration together with any trailing inline comment, keeping both the
// semantic text and the raw original text (needed to reproduce leading
// whitespace width for faithful re-emission downstream).
type Comment struct {
	RawPreComments []RawCommentLine
	PreComments    []string
	RawLineComment *string
	LineComment    *string
}

// Define is a preprocessor #define whose value is never evaluated.
type Define struct {
	Name    string
	Value   string
	Spacing string // raw whitespace between name and value, for re-emission
	Comment Comment
}

// Constant is sourced from const/static const declarations and from
// anonymous (demoted) single-line enums.
type Constant struct {
	Name    string
	Value   string
	Type    string
	Comment Comment
}

// EnumField is one member of a named Enum block.
type EnumField struct {
	Name        string
	Value       string
	PreSpacing  string
	PostSpacing string
	Comment     Comment
}

// Enum is a named enum block. Anonymous enums are demoted to Constants
// during parsing and never become an Enum value (§4.3 item 6).
type Enum struct {
	Name        string
	Fields      []EnumField
	Comment     Comment
	EndComment  Comment
	Size        int // always 4: enums are always int-sized
	Align       int // always 4
}

// FieldOffset is one entry of a Record or Union's computed layout: a field
// name paired with its byte offset from the start of the record.
type FieldOffset struct {
	Name   string
	Offset int
}

// Field is a single member of a Record or Union.
type Field struct {
	Name          string
	TypeText      string
	ArraySizeText *string // nil when not an array; may be a symbolic constant name
	Comment       Comment

	// Populated by the layout pass (registry.go/layout.go), not at parse time.
	Size      Extent
	Align     Extent
	ArraySize int // resolved integer array length; 0 when not an array
}

// Record models both a Struct/class and an SDK callback struct (§3 unifies
// them: a Record with a non-nil CallbackID is a callback).
type Record struct {
	Name    string
	Pack    Pack
	Comment Comment
	EndComment Comment

	Fields       []*Field
	NestedStruct []*Record // nested records, owned here
	Outer        *Record   // non-owning back-reference; nil at top level

	ScopeDepth int
	CallbackID *string // raw, unparsed expression text (e.g. "k_iSteamUserCallbacks + 4")

	IsSkipped bool // deliberately abandoned (e.g. bitfield) — lives in ignoredStructs

	// Populated by the layout engine (§4.5) and classifier (§4.6).
	Size           *int
	Align          *int
	PacksizeAware  bool
}

// IsSequential reports whether this record takes the platform ABI default
// pack and is therefore excluded from pack-sensitivity analysis (§4.6).
func (r *Record) IsSequential() bool { return r.Pack.IsSequential() }

// IsCallback reports whether this record carries a callback id.
func (r *Record) IsCallback() bool { return r.CallbackID != nil }

// Union is a named or (generated-name) anonymous union.
type Union struct {
	Name      string
	IsUnnamed bool
	Pack      Pack
	Fields    []*Field
	Outer     *Record
	EndComment Comment

	Size  *int
	Align *int
}

// Typedef is a top-level `typedef TYPE NAME;` alias. Pointer typedefs
// collapse to pointer-sized (§4.3 item 4).
type Typedef struct {
	Name     string
	TypeText string
	Filename string
	Comment  Comment

	Size  Extent
	Align Extent
}

// Arg is one parameter of an interface member Function.
type Arg struct {
	Name      string
	TypeText  string
	Default   *string
	Attribute *ArgAttribute
}

// ArgAttribute is one of the closed set of SDK argument attribute macros
// (§6), e.g. STEAM_ARRAY_COUNT(n).
type ArgAttribute struct {
	Name  string
	Value string
}

// FunctionAttribute is one of the closed set of SDK function attribute
// macros (§6), e.g. STEAM_FLAT_NAME(...).
type FunctionAttribute struct {
	Name  string
	Value string
}

// Function is one virtual member function of an Interface.
type Function struct {
	Name          string
	ReturnType    string
	Args          []*Arg
	IfStatement   string // top of the conditional stack at declaration time; context only
	Comment       Comment
	LineComment   *string
	Attributes    []*FunctionAttribute
	Private       bool // declared inside STEAM_PRIVATE_API(...)
}

// Interface is a class whose name begins "ISteam".
type Interface struct {
	Name      string
	Functions []*Function
	Comment   Comment
}

// SourceFile is the per-header parse result.
type SourceFile struct {
	Name    string
	Header  []string
	Includes []string

	Defines    []*Define
	Constants  []*Constant
	Enums      []*Enum
	Structs    []*Record
	Callbacks  []*Record
	Interfaces []*Interface
	Typedefs   []*Typedef
	Unions     []*Union
}
