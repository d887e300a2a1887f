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

func TestParseInterfaceFunctions(t *testing.T) {
	dir := writeHeader(t, "isteamfoo.h", `
class ISteamFoo
{
public:
	virtual void Shutdown() = 0;
	virtual bool SetAchievement( const char *pchName ) = 0;
};
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(p.Files[0].Interfaces) != 1 {
		t.Fatalf("len(Interfaces) = %d, want 1", len(p.Files[0].Interfaces))
	}
	iface := p.Files[0].Interfaces[0]
	if iface.Name != "ISteamFoo" {
		t.Errorf("iface.Name = %q, want ISteamFoo", iface.Name)
	}
	if len(iface.Functions) != 2 {
		t.Fatalf("len(Functions) = %d, want 2", len(iface.Functions))
	}

	shutdown := iface.Functions[0]
	if shutdown.Name != "Shutdown" || shutdown.ReturnType != "void" || len(shutdown.Args) != 0 {
		t.Errorf("Shutdown = %+v", shutdown)
	}

	setAchievement := iface.Functions[1]
	if setAchievement.Name != "SetAchievement" || setAchievement.ReturnType != "bool" {
		t.Errorf("SetAchievement = %+v", setAchievement)
	}
	if len(setAchievement.Args) != 1 {
		t.Fatalf("len(SetAchievement.Args) = %d, want 1", len(setAchievement.Args))
	}
	arg := setAchievement.Args[0]
	if arg.Name != "pchName" || arg.TypeText != "const char *" {
		t.Errorf("SetAchievement arg = %+v, want {Name: pchName, TypeText: \"const char *\"}", arg)
	}
}

// A forward-declared or "Response" callback interface class is recognized
// but never opens an Interface (§4.4).
func TestParseInterfacesSkipsForwardDeclareAndResponse(t *testing.T) {
	dir := writeHeader(t, "isteambar.h", `
class ISteamBar;
class ISteamBarResponse
{
public:
	virtual void OnResponse() = 0;
};
`)
	p, err := Parse(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Files[0].Interfaces) != 0 {
		t.Errorf("len(Interfaces) = %d, want 0", len(p.Files[0].Interfaces))
	}
}
