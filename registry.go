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
	"strings"

	"github.com/samber/lo"
)

// TypeKind tags the closed set of places a resolved type name can come from
// (§4.4's search order: primitive, pointer, special struct, typedef, enum,
// struct/callback).
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeIntPtr
	TypeSpecialStruct
	TypeTypedef
	TypeEnum
	TypeRecord
	TypeUnion
)

// TypeDescriptor is the resolver's tagged-variant result: one lookup across
// every place a type name can be declared, in place of the original's
// untyped "whatever object happened to match" return value. Record/Union
// are only populated for their respective Kind, since a record's own
// Size/Align may not exist yet at resolution time (the layout engine fills
// them in later, and a resolver caller must re-read Record.Size rather
// than trust a stale copy).
type TypeDescriptor struct {
	Kind   TypeKind
	Name   string
	Size   Extent
	Align  Extent
	Record *Record
	Union  *Union
}

// resolveTypeInfo looks up typeName across primitives, the intptr
// short-circuit for any pointer spelling, special structs, typedefs, enums,
// and finally structs/callbacks, in that order (§4.4). Nested records are
// found too, since closeStruct files every closed record, nested or not,
// into its file's Structs or Callbacks list.
func (p *Parser) resolveTypeInfo(typeName string) *TypeDescriptor {
	typeName = strings.TrimSpace(typeName)

	if prim, ok := primitiveTypes[typeName]; ok {
		return &TypeDescriptor{Kind: TypePrimitive, Name: typeName, Size: prim.Size, Align: prim.Align}
	}

	if strings.Contains(typeName, "*") {
		return &TypeDescriptor{Kind: TypeIntPtr, Name: typeName, Size: IntPtr(), Align: IntPtr()}
	}

	if special, ok := specialStructs[typeName]; ok {
		return &TypeDescriptor{Kind: TypeSpecialStruct, Name: typeName, Size: special.Size, Align: special.Align}
	}

	if td, ok := lo.Find(p.Typedefs, func(td *Typedef) bool { return td.Name == typeName }); ok {
		return &TypeDescriptor{Kind: TypeTypedef, Name: typeName, Size: td.Size, Align: td.Align}
	}

	allEnums := lo.FlatMap(p.Files, func(f *SourceFile, _ int) []*Enum { return f.Enums })
	if lo.ContainsBy(allEnums, func(e *Enum) bool { return e.Name == typeName }) {
		return &TypeDescriptor{Kind: TypeEnum, Name: typeName, Size: Concrete(4), Align: Concrete(4)}
	}

	recordsInFileOrder := lo.FlatMap(p.Files, func(f *SourceFile, _ int) []*Record {
		return append(append([]*Record{}, f.Structs...), f.Callbacks...)
	})
	if rec, ok := lo.Find(recordsInFileOrder, func(r *Record) bool { return r.Name == typeName }); ok {
		return recordDescriptor(rec)
	}

	// Unions aren't in the original search order, but a synthesized
	// "unnamed_field_<generated>" field (§4.3 item 7) names its enclosing
	// union as its type, and that field's layout must resolve for the
	// enclosing record to be computable at all.
	allUnions := lo.FlatMap(p.Files, func(f *SourceFile, _ int) []*Union { return f.Unions })
	if u, ok := lo.Find(allUnions, func(u *Union) bool { return u.Name == typeName }); ok {
		return unionDescriptor(u)
	}

	p.diag.unhandled("typename "+typeName+" not found across primitive, struct and typedef, maybe it is a nested type", "", 0, "")
	return nil
}

func recordDescriptor(rec *Record) *TypeDescriptor {
	d := &TypeDescriptor{Kind: TypeRecord, Name: rec.Name, Record: rec}
	if rec.Size != nil {
		d.Size = Concrete(*rec.Size)
	}
	if rec.Align != nil {
		d.Align = Concrete(*rec.Align)
	}
	return d
}

func unionDescriptor(u *Union) *TypeDescriptor {
	d := &TypeDescriptor{Kind: TypeUnion, Name: u.Name, Union: u}
	if u.Size != nil {
		d.Size = Concrete(*u.Size)
	}
	if u.Align != nil {
		d.Align = Concrete(*u.Align)
	}
	return d
}

// resolveConstValue finds the first file-level Constant named name, in file
// order (§4.4).
func (p *Parser) resolveConstValue(name string) *Constant {
	allConstants := lo.FlatMap(p.Files, func(f *SourceFile, _ int) []*Constant { return f.Constants })
	c, _ := lo.Find(allConstants, func(c *Constant) bool { return c.Name == name })
	return c
}
