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

import "strconv"

// resolveFieldLayout resolves every field of rec against the type registry
// at default alignment d, recursing into nested/referenced records and
// unions whose size isn't known yet (§4.5 "nested/referenced record
// fields"). visiting guards against a cycle across records, which the spec
// assumes absent; if one is found, rec is recorded as ignored instead of
// looping forever.
//
// Field.Align is always the resolved type's own natural alignment, never
// blended with rec.Pack — the record-level pack is applied only inside
// calculateRecordOffsets, where it caps each field's effective alignment
// and bounds the record's own final alignment, per the Design Note that
// flags the original's field/record pack blending as a defect to avoid.
func (p *Parser) resolveFieldLayout(rec *Record, d int, visiting map[*Record]bool) bool {
	if visiting[rec] {
		p.diag.warn("cycle detected resolving layout of "+rec.Name, rec.Name, 0, "")
		p.IgnoredStructs = append(p.IgnoredStructs, rec)
		return false
	}
	visiting[rec] = true
	defer delete(visiting, rec)

	for _, f := range rec.Fields {
		td := p.resolveTypeInfo(f.TypeText)
		if td == nil {
			// Usually a typedef used inside a class body the parser
			// treats as a struct; that field's type was never modeled.
			p.IgnoredStructs = append(p.IgnoredStructs, rec)
			return false
		}

		switch td.Kind {
		case TypeRecord:
			if td.Record.Size == nil {
				if !p.resolveFieldLayout(td.Record, d, visiting) {
					return false
				}
				p.calculateRecordOffsets(td.Record, d)
			}
			f.Size = Concrete(*td.Record.Size)
			f.Align = Concrete(*td.Record.Align)
		case TypeUnion:
			if td.Union.Size == nil {
				for _, uf := range td.Union.Fields {
					utd := p.resolveTypeInfo(uf.TypeText)
					if utd == nil {
						p.IgnoredStructs = append(p.IgnoredStructs, rec)
						return false
					}
					uf.Size = utd.Size
					uf.Align = utd.Align
					if uf.ArraySizeText != nil {
						uf.ArraySize = p.resolveArraySize(*uf.ArraySizeText)
					}
				}
				p.calculateUnionSize(td.Union, d)
			}
			f.Size = Concrete(*td.Union.Size)
			f.Align = Concrete(*td.Union.Align)
		default:
			f.Size = td.Size
			f.Align = td.Align
		}

		if f.ArraySizeText != nil {
			f.ArraySize = p.resolveArraySize(*f.ArraySizeText)
		}
	}
	return true
}

// resolveArraySize resolves an array declarator's size text, which is
// either a literal decimal or a symbolic Constant name (§4.3 item 10).
func (p *Parser) resolveArraySize(text string) int {
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	if c := p.resolveConstValue(text); c != nil {
		if n, err := strconv.Atoi(c.Value); err == nil {
			return n
		}
	}
	return 0
}

// calculateRecordOffsets implements the §4.5 Record algorithm for one
// default alignment d, returning the field offsets in declaration order.
func (p *Parser) calculateRecordOffsets(rec *Record, d int) []FieldOffset {
	recordAlign := d
	switch rec.Pack.Kind {
	case PackValue:
		recordAlign = rec.Pack.Value
		// An explicit #pragma pack(N) is a hard ceiling on alignment: it
		// caps every field regardless of which default alignment D the
		// classifier happens to be probing, so a packed record's layout
		// stays the same under both D=4 and D=8 whenever N <= 4.
		d = minInt(d, rec.Pack.Value)
	case PackPlatformABIDefault:
		// The [4]-on-the-stack heuristic sentinel always stands in for an
		// active pack(4), so it caps alignment the same way an explicit
		// PackValue{4} would.
		const platformABIDefaultPack = 4
		recordAlign = platformABIDefaultPack
		d = minInt(d, platformABIDefaultPack)
	}

	if len(rec.Fields) == 0 {
		size := 1
		rec.Size = &size
		align := recordAlign
		rec.Align = &align
		return nil
	}

	offsets := make([]FieldOffset, 0, len(rec.Fields))
	offset := 0
	maxFieldSize := 0

	for _, f := range rec.Fields {
		a := minInt(f.Align.Resolve(), d)
		if a > 0 {
			pad := (a - offset%a) % a
			offset += pad
		}
		offsets = append(offsets, FieldOffset{Name: f.Name, Offset: offset})
		recordAlign = maxInt(recordAlign, a)

		n := f.ArraySize
		if n == 0 {
			n = 1
		}
		fieldSize := f.Size.Resolve() * n
		if f.Size.Resolve() > maxFieldSize {
			maxFieldSize = f.Size.Resolve()
		}
		offset += fieldSize
	}

	size := offset
	rec.Size = &size
	align := minInt(maxFieldSize, recordAlign)
	rec.Align = &align

	return offsets
}

// calculateUnionSize implements the §4.5 Union algorithm: size is the
// largest field's size rounded up to that field's own alignment (treating
// a missing alignment as d).
func (p *Parser) calculateUnionSize(u *Union, d int) {
	if len(u.Fields) == 0 {
		size := 1
		u.Size = &size
		align := d
		u.Align = &align
		return
	}

	maxSize := 0
	maxAlign := 0
	for _, f := range u.Fields {
		n := f.ArraySize
		if n == 0 {
			n = 1
		}
		sz := f.Size.Resolve() * n
		if sz > maxSize {
			maxSize = sz
			maxAlign = f.Align.Resolve()
		}
	}
	if maxAlign == 0 {
		maxAlign = d
	}

	size := maxSize
	if remainder := maxSize % maxAlign; remainder != 0 {
		size = maxSize + (maxAlign - remainder)
	}
	u.Size = &size
	u.Align = &maxAlign
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
