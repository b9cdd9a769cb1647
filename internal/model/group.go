package model

import (
	"github.com/chRyNaN/glimpse/internal/resolve"
)

// GroupFields partitions fields by attribute group. Groups are ordered by
// the first field that names them and keep their fields in input order.
// Every field lands in exactly one group.
func GroupFields(fields []FieldDescriptor) []Group {
	index := make(map[resolve.AttributeGroupSymbol]int)

	var groups []Group

	for _, f := range fields {
		key := f.Group()

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Symbol: key})
		}

		groups[i].Fields = append(groups[i].Fields, f)
	}

	return groups
}
