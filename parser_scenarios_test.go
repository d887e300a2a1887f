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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeHeader writes a single header file into a fresh temp directory and
// returns the directory, ready to hand to Parse.
func writeHeader(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func findRecord(p *Parser, name string) *Record {
	for _, f := range p.Files {
		for _, r := range f.Structs {
			if r.Name == name {
				return r
			}
		}
		for _, r := range f.Callbacks {
			if r.Name == name {
				return r
			}
		}
	}
	return nil
}

func offsetOf(offsets []FieldOffset, name string) (int, bool) {
	for _, o := range offsets {
		if o.Name == name {
			return o.Offset, true
		}
	}
	return 0, false
}

// S1 — Pack-sensitive record.
func TestScenario_PackSensitiveRecord(t *testing.T) {
	dir := writeHeader(t, "isteamscenario1.h", `
#pragma pack( push, 8 )
struct A_t
{
	uint32 a;
	uint64 b;
};
#pragma pack( pop )
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}

	rec := findRecord(p, "A_t")
	if rec == nil {
		t.Fatal("A_t not parsed")
	}
	if !rec.PacksizeAware {
		t.Error("A_t should be packsize_aware")
	}

	found := false
	for _, n := range p.PackSizeAwareStructs {
		if n == "A_t" {
			found = true
		}
	}
	if !found {
		t.Error("A_t should appear in PackSizeAwareStructs")
	}

	visiting := map[*Record]bool{}
	if !p.resolveFieldLayout(rec, 4, visiting) {
		t.Fatal("resolveFieldLayout(4) failed")
	}
	offsets4 := p.calculateRecordOffsets(rec, 4)
	if *rec.Size != 12 {
		t.Errorf("D=4 size = %d, want 12", *rec.Size)
	}
	if off, _ := offsetOf(offsets4, "a"); off != 0 {
		t.Errorf("D=4 offset(a) = %d, want 0", off)
	}
	if off, _ := offsetOf(offsets4, "b"); off != 4 {
		t.Errorf("D=4 offset(b) = %d, want 4", off)
	}

	visiting = map[*Record]bool{}
	if !p.resolveFieldLayout(rec, 8, visiting) {
		t.Fatal("resolveFieldLayout(8) failed")
	}
	offsets8 := p.calculateRecordOffsets(rec, 8)
	if *rec.Size != 16 {
		t.Errorf("D=8 size = %d, want 16", *rec.Size)
	}
	if off, _ := offsetOf(offsets8, "b"); off != 8 {
		t.Errorf("D=8 offset(b) = %d, want 8", off)
	}
}

// S2 — Pack-sensitive suppressed.
func TestScenario_PackSensitiveSuppressed(t *testing.T) {
	dir := writeHeader(t, "isteamscenario2.h", `
#pragma pack( push, 4 )
struct A_t
{
	uint32 a;
	uint64 b;
};
#pragma pack( pop )
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}

	rec := findRecord(p, "A_t")
	if rec == nil {
		t.Fatal("A_t not parsed")
	}
	if rec.PacksizeAware {
		t.Error("A_t should not be packsize_aware under pack(4)")
	}

	for _, d := range []int{4, 8} {
		visiting := map[*Record]bool{}
		if !p.resolveFieldLayout(rec, d, visiting) {
			t.Fatalf("resolveFieldLayout(%d) failed", d)
		}
		p.calculateRecordOffsets(rec, d)
		if *rec.Size != 12 {
			t.Errorf("D=%d size = %d, want 12", d, *rec.Size)
		}
	}
}

// S3 — Callback id arithmetic.
func TestScenario_CallbackIDArithmetic(t *testing.T) {
	dir := writeHeader(t, "isteamscenario3.h", `
const int k_iSteamUserCallbacks = 300;

struct FriendChatMsg_t
{
	enum { k_iCallback = k_iSteamUserCallbacks + 4 };
	int m_nFoo;
};
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}

	rec := findRecord(p, "FriendChatMsg_t")
	if rec == nil {
		t.Fatal("FriendChatMsg_t not parsed")
	}
	if !rec.IsCallback() {
		t.Fatal("FriendChatMsg_t should carry a callback id")
	}
	if *rec.CallbackID != "k_iSteamUserCallbacks + 4" {
		t.Errorf("CallbackID = %q, want %q", *rec.CallbackID, "k_iSteamUserCallbacks + 4")
	}

	c := p.resolveConstValue("k_iSteamUserCallbacks")
	if c == nil || c.Value != "300" {
		t.Fatalf("resolveConstValue(k_iSteamUserCallbacks) = %+v, want Value 300", c)
	}
}

// S4 — Multi-declarator field.
func TestScenario_MultiDeclaratorField(t *testing.T) {
	dir := writeHeader(t, "isteamscenario4.h", `
struct B_t
{
	int a, b[3], *c;
};
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}

	rec := findRecord(p, "B_t")
	if rec == nil {
		t.Fatal("B_t not parsed")
	}
	if len(rec.Fields) != 3 {
		t.Fatalf("B_t has %d fields, want 3", len(rec.Fields))
	}

	byName := map[string]*Field{}
	for _, f := range rec.Fields {
		byName[f.Name] = f
	}

	a, ok := byName["a"]
	if !ok || a.TypeText != "int" || a.ArraySizeText != nil {
		t.Errorf("field a = %+v, want TypeText=int, no array", a)
	}
	b, ok := byName["b"]
	if !ok || b.TypeText != "int" || b.ArraySizeText == nil || *b.ArraySizeText != "3" {
		t.Errorf("field b = %+v, want TypeText=int, array=3", b)
	}
	c, ok := byName["c"]
	if !ok {
		t.Fatal("field c missing")
	}

	visiting := map[*Record]bool{}
	if !p.resolveFieldLayout(rec, 8, visiting) {
		t.Fatal("resolveFieldLayout failed")
	}
	if c.Size.Resolve() != 8 || c.Align.Resolve() != 8 {
		t.Errorf("pointer field c size/align = %d/%d, want 8/8", c.Size.Resolve(), c.Align.Resolve())
	}
}

// S5 — Anonymous nested union.
func TestScenario_AnonymousNestedUnion(t *testing.T) {
	dir := writeHeader(t, "isteamscenario5.h", `
struct X
{
	int tag;
	union
	{
		int i;
		float f;
	};
};
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}

	rec := findRecord(p, "X")
	if rec == nil {
		t.Fatal("X not parsed")
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("X has %d fields, want 2 (tag + synthesized union field)", len(rec.Fields))
	}
	if rec.Fields[0].Name != "tag" || rec.Fields[0].TypeText != "int" {
		t.Errorf("first field = %+v, want tag:int", rec.Fields[0])
	}

	if len(p.Files[0].Unions) != 1 {
		t.Fatalf("expected 1 union, got %d", len(p.Files[0].Unions))
	}
	u := p.Files[0].Unions[0]
	if len(u.Fields) != 2 {
		t.Fatalf("union has %d fields, want 2", len(u.Fields))
	}
	if rec.Fields[1].TypeText != u.Name {
		t.Errorf("X's second field type %q does not name the union %q", rec.Fields[1].TypeText, u.Name)
	}

	visiting := map[*Record]bool{}
	if !p.resolveFieldLayout(rec, 8, visiting) {
		t.Fatal("resolveFieldLayout failed")
	}
	p.calculateRecordOffsets(rec, 8)
	if *rec.Size != 8 {
		t.Errorf("X size = %d, want 8", *rec.Size)
	}
	if *rec.Align != 4 {
		t.Errorf("X align = %d, want 4", *rec.Align)
	}
	if u.Size == nil || *u.Size != 4 || u.Align == nil || *u.Align != 4 {
		t.Errorf("union size/align = %v/%v, want 4/4", u.Size, u.Align)
	}
}

// S6 — Bitfield abandon.
func TestScenario_BitfieldAbandon(t *testing.T) {
	dir := writeHeader(t, "isteamscenario6.h", `
struct C_t
{
	int a;
	uint32 bits : 3;
};
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}

	if findRecord(p, "C_t") != nil {
		t.Fatal("C_t should not appear in the file's structs/callbacks")
	}

	found := false
	for _, r := range p.IgnoredStructs {
		if r.Name == "C_t" {
			found = true
		}
	}
	if !found {
		t.Error("C_t should be in IgnoredStructs")
	}
}

// Universal property 5: the pack stack is balanced at EOF. A file that pushes
// and pops in matching pairs gets no warning.
func TestProperty_BalancedPackStack(t *testing.T) {
	dir := writeHeader(t, "isteambalance.h", `
#pragma pack( push, 4 )
struct D_t
{
	int a;
};
#pragma pack( pop )
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range p.Diagnostics() {
		if d.Kind == DiagWarning && strings.Contains(d.Message, "pack stack") {
			t.Errorf("unexpected unbalanced pack stack warning: %q", d.Message)
		}
	}
}

// A file that pushes a pack and never pops it leaves the stack non-empty at
// EOF, which must produce the balance warning.
func TestProperty_UnbalancedPackStackAtEOF(t *testing.T) {
	dir := writeHeader(t, "isteamunbalanced.h", `
#pragma pack( push, 4 )
struct E_t
{
	int a;
};
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, d := range p.Diagnostics() {
		if d.Kind == DiagWarning && d.Message == "#pragma pack stack is not balanced at end of file" {
			found = true
		}
	}
	if !found {
		t.Error("expected an unbalanced pack stack warning at EOF")
	}
}

// Universal property 6: resolver totality over the primitive table.
func TestProperty_ResolverTotalityOnPrimitives(t *testing.T) {
	p := &Parser{settings: NewSettings(), diag: newDiagnosticSink(discardLogger())}
	for name, want := range primitiveTypes {
		td := p.resolveTypeInfo(name)
		if td == nil {
			t.Fatalf("resolveTypeInfo(%q) = nil", name)
		}
		if td.Size.Resolve() != want.Size.Resolve() {
			t.Errorf("resolveTypeInfo(%q).Size = %d, want %d", name, td.Size.Resolve(), want.Size.Resolve())
		}
	}
}
