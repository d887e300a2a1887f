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

func TestApplyGameServerFaking(t *testing.T) {
	p := newTestParser()
	p.Files = append(p.Files, &SourceFile{
		Name: "isteamutils.h",
		Interfaces: []*Interface{{
			Name: "ISteamUtils",
			Functions: []*Function{{
				Name:       "GetSeconds",
				ReturnType: "uint32",
				Args:       []*Arg{{Name: "bFlag", TypeText: "bool"}},
			}},
		}},
	})

	p.applyGameServerFaking()

	if len(p.Files) != 2 {
		t.Fatalf("len(p.Files) = %d, want 2", len(p.Files))
	}
	derived := p.Files[1]
	if derived.Name != "isteamgameserverutils.h" {
		t.Errorf("derived.Name = %q, want isteamgameserverutils.h", derived.Name)
	}
	if len(derived.Interfaces) != 1 || derived.Interfaces[0].Name != "ISteamGameServerUtils" {
		t.Fatalf("derived interfaces = %+v", derived.Interfaces)
	}

	// Mutating the clone must never alias the original (supplemented deep-copy
	// requirement: the source file stays in p.Files beside its derived copy).
	derived.Interfaces[0].Functions[0].Args[0].Name = "mutated"
	if p.Files[0].Interfaces[0].Functions[0].Args[0].Name != "bFlag" {
		t.Error("mutating the derived clone's args mutated the original interface")
	}

	derived.Interfaces[0].Functions[0].Name = "Renamed"
	if p.Files[0].Interfaces[0].Functions[0].Name != "GetSeconds" {
		t.Error("mutating the derived clone's function mutated the original interface")
	}
}

func TestApplyGameServerFakingIgnoresNonCandidates(t *testing.T) {
	p := newTestParser()
	p.Files = append(p.Files, &SourceFile{Name: "isteamfriends.h"})
	p.applyGameServerFaking()
	if len(p.Files) != 1 {
		t.Fatalf("len(p.Files) = %d, want 1 (isteamfriends.h is not a game-server candidate)", len(p.Files))
	}
}
