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

import "testing"

func newTestParser() *Parser {
	return &Parser{settings: NewSettings(), diag: newDiagnosticSink(discardLogger())}
}

func TestResolveTypeInfoSearchOrder(t *testing.T) {
	p := newTestParser()

	// Primitive wins even when a typedef of the same name exists, since
	// the primitive table is consulted first (§4.4).
	p.Typedefs = append(p.Typedefs, &Typedef{Name: "int", TypeText: "whatever", Size: Concrete(99), Align: Concrete(99)})
	if td := p.resolveTypeInfo("int"); td == nil || td.Kind != TypePrimitive || td.Size.Resolve() != 4 {
		t.Errorf("resolveTypeInfo(int) = %+v, want primitive size 4", td)
	}

	// A bare pointer spelling with no primitive entry resolves as intptr.
	if td := p.resolveTypeInfo("SomeType *"); td == nil || td.Kind != TypeIntPtr || td.Size.Resolve() != 8 {
		t.Errorf("resolveTypeInfo(SomeType *) = %+v, want intptr", td)
	}

	// CSteamID is a special struct, found ahead of any typedef of the same name.
	p.Typedefs = append(p.Typedefs, &Typedef{Name: "CSteamID", TypeText: "uint64", Size: Concrete(1), Align: Concrete(1)})
	if td := p.resolveTypeInfo("CSteamID"); td == nil || td.Kind != TypeSpecialStruct || td.Size.Resolve() != 8 {
		t.Errorf("resolveTypeInfo(CSteamID) = %+v, want special struct size 8", td)
	}

	// A genuine typedef resolves once no primitive/special-struct entry exists.
	p.Typedefs = append(p.Typedefs, &Typedef{Name: "MyHandle", TypeText: "uint32", Size: Concrete(4), Align: Concrete(4)})
	if td := p.resolveTypeInfo("MyHandle"); td == nil || td.Kind != TypeTypedef || td.Size.Resolve() != 4 {
		t.Errorf("resolveTypeInfo(MyHandle) = %+v, want typedef size 4", td)
	}

	// An enum resolves to a fixed int-sized descriptor.
	p.Files = append(p.Files, &SourceFile{Name: "a.h", Enums: []*Enum{{Name: "EMyEnum", Size: 4, Align: 4}}})
	if td := p.resolveTypeInfo("EMyEnum"); td == nil || td.Kind != TypeEnum || td.Size.Resolve() != 4 {
		t.Errorf("resolveTypeInfo(EMyEnum) = %+v, want enum size 4", td)
	}

	// A struct resolves to a record descriptor carrying the *Record itself.
	rec := &Record{Name: "MyStruct_t"}
	p.Files[0].Structs = append(p.Files[0].Structs, rec)
	if td := p.resolveTypeInfo("MyStruct_t"); td == nil || td.Kind != TypeRecord || td.Record != rec {
		t.Errorf("resolveTypeInfo(MyStruct_t) = %+v, want record descriptor wrapping rec", td)
	}

	// A union resolves only after every other category has been checked.
	u := &Union{Name: "union__a_5"}
	p.Files[0].Unions = append(p.Files[0].Unions, u)
	if td := p.resolveTypeInfo("union__a_5"); td == nil || td.Kind != TypeUnion || td.Union != u {
		t.Errorf("resolveTypeInfo(union__a_5) = %+v, want union descriptor wrapping u", td)
	}

	// An unresolvable name yields nil and records an Unhandled diagnostic.
	before := len(p.Diagnostics())
	if td := p.resolveTypeInfo("TotallyUnknownType_t"); td != nil {
		t.Errorf("resolveTypeInfo(TotallyUnknownType_t) = %+v, want nil", td)
	}
	if len(p.Diagnostics()) != before+1 {
		t.Error("expected an Unhandled diagnostic for an unresolvable type name")
	}
}

func TestResolveConstValueFileOrder(t *testing.T) {
	p := newTestParser()
	p.Files = append(p.Files,
		&SourceFile{Name: "a.h", Constants: []*Constant{{Name: "K", Value: "1"}}},
		&SourceFile{Name: "b.h", Constants: []*Constant{{Name: "K", Value: "2"}}},
	)
	c := p.resolveConstValue("K")
	if c == nil || c.Value != "1" {
		t.Errorf("resolveConstValue(K) = %+v, want the first file's Constant (value 1)", c)
	}
	if c := p.resolveConstValue("Missing"); c != nil {
		t.Errorf("resolveConstValue(Missing) = %+v, want nil", c)
	}
}
