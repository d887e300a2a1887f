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

// A typedef that forward-references a name declared later in the same file
// resolves to nothing at parse time; populateTypedefLayouts must still fix
// it up afterward by walking the full alias chain, for every typedef in the
// file, not just the first one that needed fixing up.
func TestPopulateTypedefLayoutsForwardReference(t *testing.T) {
	dir := writeHeader(t, "isteamtypedefs.h", `
typedef MyInt_t MyAlias_t;
typedef uint32 MyInt_t;
typedef MyAlias_t MySecondAlias_t;
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}

	byName := map[string]*Typedef{}
	for _, td := range p.Typedefs {
		byName[td.Name] = td
	}

	for _, name := range []string{"MyInt_t", "MyAlias_t", "MySecondAlias_t"} {
		td, ok := byName[name]
		if !ok {
			t.Fatalf("typedef %s not parsed", name)
		}
		if td.Size.Resolve() != 4 || td.Align.Resolve() != 4 {
			t.Errorf("typedef %s size/align = %d/%d, want 4/4", name, td.Size.Resolve(), td.Align.Resolve())
		}
	}
}

func TestParseTypedefsSkipsNestedAndFunctionPointer(t *testing.T) {
	dir := writeHeader(t, "isteamtypedefs2.h", `
typedef void (*MyCallback_t)(int);
struct Holder_t
{
	typedef int Inner_t;
	int a;
};
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Typedefs) != 0 {
		t.Errorf("expected no typedefs parsed, got %d", len(p.Typedefs))
	}
}
