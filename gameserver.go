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

// applyGameServerFaking derives a synthetic "isteamgameserver..." file for
// every game-server candidate file (§6), deep-copying its interfaces so
// renaming the copy's name never aliases the original file's interface
// (supplemented feature 7 — the original's shallow copy.deepcopy target,
// reimplemented explicitly field-by-field since Go has no generic deep
// copy).
func (p *Parser) applyGameServerFaking() {
	candidates := lo.Filter(p.Files, func(f *SourceFile, _ int) bool { return gameServerCandidates[f.Name] })

	derived := lo.Map(candidates, func(f *SourceFile, _ int) *SourceFile {
		return &SourceFile{
			Name: strings.Replace(f.Name, "isteam", "isteamgameserver", 1),
			Interfaces: lo.Map(f.Interfaces, func(iface *Interface, _ int) *Interface {
				return cloneInterfaceForGameServer(iface)
			}),
		}
	})

	p.Files = append(p.Files, derived...)
}

func cloneInterfaceForGameServer(src *Interface) *Interface {
	dst := &Interface{
		Name:    strings.Replace(src.Name, "ISteam", "ISteamGameServer", 1),
		Comment: src.Comment,
	}
	for _, fn := range src.Functions {
		clone := *fn
		clone.Args = make([]*Arg, len(fn.Args))
		for i, a := range fn.Args {
			argClone := *a
			if a.Attribute != nil {
				attrClone := *a.Attribute
				argClone.Attribute = &attrClone
			}
			clone.Args[i] = &argClone
		}
		clone.Attributes = nil
		for _, at := range fn.Attributes {
			atClone := *at
			clone.Attributes = append(clone.Attributes, &atClone)
		}
		dst.Functions = append(dst.Functions, &clone)
	}
	return dst
}
