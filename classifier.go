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
	"sort"

	"github.com/samber/lo"
)

// findOutPackSizeAwareStructs is the §4.6 pack-awareness classifier: every
// parsed Record (struct or callback) not marked sequential has its layout
// computed twice, at D=8 and D=4, and is flagged packsize_aware when
// either the sizes or the sorted offset sets differ.
func (p *Parser) findOutPackSizeAwareStructs() {
	for _, f := range p.Files {
		records := append(append([]*Record{}, f.Callbacks...), f.Structs...)
		candidates := lo.Filter(records, func(rec *Record, _ int) bool {
			if !rec.IsSequential() {
				return true
			}
			if p.settings.PrintDebug {
				p.diag.debug(p.settings, "Struct "+rec.Name+" is aligns by platform ABI default, means sequential")
			}
			return false
		})

		for _, rec := range candidates {
			visiting := map[*Record]bool{}
			if !p.resolveFieldLayout(rec, 8, visiting) {
				continue
			}
			offsetsLarge := p.calculateRecordOffsets(rec, 8)
			sizeLarge := rec.Size

			visiting = map[*Record]bool{}
			if !p.resolveFieldLayout(rec, 4, visiting) {
				continue
			}
			offsetsSmall := p.calculateRecordOffsets(rec, 4)
			sizeSmall := rec.Size

			sortOffsets(offsetsLarge)
			sortOffsets(offsetsSmall)

			if !offsetsEqual(offsetsLarge, offsetsSmall) || sizeLarge == nil || sizeSmall == nil || *sizeLarge != *sizeSmall {
				if p.settings.PrintDebug {
					p.diag.debug(p.settings, "Found packsize aware struct '"+rec.Name+"'")
				}
				rec.PacksizeAware = true
				p.PackSizeAwareStructs = append(p.PackSizeAwareStructs, rec.Name)
			}
		}
	}
}

func sortOffsets(offsets []FieldOffset) {
	sort.Slice(offsets, func(i, j int) bool { return offsets[i].Name < offsets[j].Name })
}

func offsetsEqual(a, b []FieldOffset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
