package layout

import "github.com/cellplot/cellplot/pkg/data"

// FacetGroup is one facet's slice of the data. Rows keep their original
// order; records missing the facet field are dropped from every group.
type FacetGroup struct {
	RowValue string
	ColValue string
	Rows     data.DataSource
}

// SplitWrap partitions rows by the distinct values of field, one group per
// value in lexicographic order.
func SplitWrap(rows data.DataSource, field string) []FacetGroup {
	levels := data.DiscreteDomain(rows, field)
	groups := make([]FacetGroup, len(levels))
	index := make(map[string]int, len(levels))
	for i, l := range levels {
		groups[i] = FacetGroup{RowValue: l}
		index[l] = i
	}
	for _, r := range rows {
		v, ok := data.StringField(r, field)
		if !ok {
			continue
		}
		i := index[v]
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// SplitGrid cross-partitions rows by rowField x colField. Every
// combination of the two level sets gets a group, including combinations
// with no rows, in row-major order matching GridSpec panels.
func SplitGrid(rows data.DataSource, rowField, colField string) []FacetGroup {
	rowLevels := data.DiscreteDomain(rows, rowField)
	colLevels := data.DiscreteDomain(rows, colField)

	groups := make([]FacetGroup, 0, len(rowLevels)*len(colLevels))
	index := make(map[[2]string]int, len(rowLevels)*len(colLevels))
	for _, rv := range rowLevels {
		for _, cv := range colLevels {
			index[[2]string{rv, cv}] = len(groups)
			groups = append(groups, FacetGroup{RowValue: rv, ColValue: cv})
		}
	}
	for _, r := range rows {
		rv, ok := data.StringField(r, rowField)
		if !ok {
			continue
		}
		cv, ok := data.StringField(r, colField)
		if !ok {
			continue
		}
		i := index[[2]string{rv, cv}]
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}
