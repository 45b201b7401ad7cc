package bench

import (
	"sort"

	"github.com/dshills/newestbench/internal/model"
)

// Mismatch is a partner for which two results chose different orders.
type Mismatch struct {
	PartnerID int64
	Left      int64
	Right     int64
}

// Diff describes how two results disagree.
type Diff struct {
	OnlyLeft   []model.Row
	OnlyRight  []model.Row
	Mismatched []Mismatch
	// Duplicates lists partners that appear more than once in either
	// result.
	Duplicates []int64
}

// Empty reports whether both results agree completely.
func (d Diff) Empty() bool {
	return len(d.OnlyLeft) == 0 && len(d.OnlyRight) == 0 &&
		len(d.Mismatched) == 0 && len(d.Duplicates) == 0
}

// Compare matches two results by partner id. Output slices are ordered by
// partner id.
func Compare(left, right []model.Row) Diff {
	var d Diff
	l, lDup := index(left)
	r, rDup := index(right)
	d.Duplicates = mergeIDs(lDup, rDup)

	for id, lo := range l {
		ro, ok := r[id]
		switch {
		case !ok:
			d.OnlyLeft = append(d.OnlyLeft, model.Row{PartnerID: id, OrderID: lo})
		case lo != ro:
			d.Mismatched = append(d.Mismatched, Mismatch{PartnerID: id, Left: lo, Right: ro})
		}
	}
	for id, ro := range r {
		if _, ok := l[id]; !ok {
			d.OnlyRight = append(d.OnlyRight, model.Row{PartnerID: id, OrderID: ro})
		}
	}

	sortRows(d.OnlyLeft)
	sortRows(d.OnlyRight)
	sort.Slice(d.Mismatched, func(i, j int) bool { return d.Mismatched[i].PartnerID < d.Mismatched[j].PartnerID })
	return d
}

func index(rows []model.Row) (map[int64]int64, map[int64]bool) {
	m := make(map[int64]int64, len(rows))
	dup := map[int64]bool{}
	for _, row := range rows {
		if _, ok := m[row.PartnerID]; ok {
			dup[row.PartnerID] = true
		}
		m[row.PartnerID] = row.OrderID
	}
	return m, dup
}

func mergeIDs(a, b map[int64]bool) []int64 {
	var ids []int64
	for id := range a {
		ids = append(ids, id)
	}
	for id := range b {
		if !a[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortRows(rows []model.Row) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].PartnerID < rows[j].PartnerID })
}
