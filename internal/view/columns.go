package view

// Column visibility/order/pin mutators (spec §4.6). All return a bool
// success flag; failures are no-ops that the caller should surface via
// an InvalidAction status message (spec §7), not an error type, since
// these conditions ("already pinned", "at max pinned") are routine UI
// feedback rather than exceptional.

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

func removeAt(xs []int, i int) []int {
	out := append([]int(nil), xs[:i]...)
	return append(out, xs[i+1:]...)
}

// HideColumn moves the source column currently at display index
// displayIdx from visible to hidden. Refused if the column is pinned.
func (v *DataView) HideColumn(displayIdx int) bool {
	cols := v.DisplayColumns()
	if displayIdx < 0 || displayIdx >= len(cols) {
		return false
	}
	src := cols[displayIdx]
	if indexOf(v.PinnedColumns, src) >= 0 {
		return false
	}
	pos := indexOf(v.VisibleColumns, src)
	if pos < 0 {
		return false
	}
	v.VisibleColumns = removeAt(v.VisibleColumns, pos)
	return true
}

// UnhideAllColumns restores every source column to VisibleColumns, in
// source order, leaving PinnedColumns untouched (pinned columns are
// always a subset of visible).
func (v *DataView) UnhideAllColumns() {
	v.VisibleColumns = make([]int, v.Source.ColumnCount())
	for i := range v.VisibleColumns {
		v.VisibleColumns[i] = i
	}
}

// PinColumn moves the source column at displayIdx into the pinned
// prefix's tail. Refused if already pinned or at MaxPinned capacity.
func (v *DataView) PinColumn(displayIdx int) bool {
	cols := v.DisplayColumns()
	if displayIdx < 0 || displayIdx >= len(cols) {
		return false
	}
	src := cols[displayIdx]
	if indexOf(v.PinnedColumns, src) >= 0 {
		return false
	}
	if len(v.PinnedColumns) >= v.maxPinned() {
		return false
	}
	// Ensure it's visible (pinning a hidden column implicitly unhides it).
	if indexOf(v.VisibleColumns, src) < 0 {
		v.VisibleColumns = append(v.VisibleColumns, src)
	}
	v.PinnedColumns = append(v.PinnedColumns, src)
	return true
}

// UnpinColumn removes the source column at displayIdx from the pinned
// prefix. Per spec §4.6 it is simply appended to the tail of
// VisibleColumns (it remains visible, just no longer forced first).
func (v *DataView) UnpinColumn(displayIdx int) bool {
	cols := v.DisplayColumns()
	if displayIdx < 0 || displayIdx >= len(cols) {
		return false
	}
	src := cols[displayIdx]
	pos := indexOf(v.PinnedColumns, src)
	if pos < 0 {
		return false
	}
	v.PinnedColumns = removeAt(v.PinnedColumns, pos)
	if indexOf(v.VisibleColumns, src) < 0 {
		v.VisibleColumns = append(v.VisibleColumns, src)
	}
	return true
}

// MoveColumnLeft/MoveColumnRight swap the column at displayIdx with its
// neighbour within the same zone (pinned or unpinned-visible),
// wrapping around at the zone boundary. A move never crosses the
// pinned/visible boundary in a single step, per spec §4.6.
func (v *DataView) MoveColumnLeft(displayIdx int) bool {
	return v.moveWithinZone(displayIdx, -1)
}

func (v *DataView) MoveColumnRight(displayIdx int) bool {
	return v.moveWithinZone(displayIdx, 1)
}

func (v *DataView) moveWithinZone(displayIdx, dir int) bool {
	cols := v.DisplayColumns()
	if displayIdx < 0 || displayIdx >= len(cols) {
		return false
	}
	src := cols[displayIdx]

	nPinned := len(v.PinnedColumns)
	if displayIdx < nPinned {
		moved := moveWithWrap(v.PinnedColumns, indexOf(v.PinnedColumns, src), dir)
		if moved == nil {
			return false
		}
		v.PinnedColumns = moved
		return true
	}

	// Unpinned-visible zone: operate on the unpinned subsequence of
	// VisibleColumns, in display order (matches cols[nPinned:]).
	unpinned := cols[nPinned:]
	zonePos := displayIdx - nPinned
	if zonePos < 0 || zonePos >= len(unpinned) {
		return false
	}
	newZone := moveWithWrap(unpinned, zonePos, dir)
	if newZone == nil {
		return false
	}
	return v.reorderVisibleSuffix(newZone)
}

// moveWithWrap removes the element at pos and reinserts it at
// (pos+dir), wrapping around the slice boundary. For an interior
// position this is equivalent to swapping with the adjacent neighbour;
// at a zone boundary it wraps the item to the opposite end instead of
// swapping with a nonexistent out-of-zone neighbour, matching spec §4.6
// ("wraps around within that zone").
func moveWithWrap(xs []int, pos, dir int) []int {
	n := len(xs)
	if pos < 0 || n < 2 {
		return nil
	}
	item := xs[pos]
	rest := make([]int, 0, n-1)
	rest = append(rest, xs[:pos]...)
	rest = append(rest, xs[pos+1:]...)

	newPos := ((pos+dir)%n + n) % n
	out := make([]int, 0, n)
	out = append(out, rest[:newPos]...)
	out = append(out, item)
	out = append(out, rest[newPos:]...)
	return out
}

// reorderVisibleSuffix rewrites VisibleColumns so that its unpinned
// members appear in the given order, preserving pinned membership.
func (v *DataView) reorderVisibleSuffix(newUnpinnedOrder []int) bool {
	pinnedSet := make(map[int]bool, len(v.PinnedColumns))
	for _, c := range v.PinnedColumns {
		pinnedSet[c] = true
	}
	out := make([]int, 0, len(v.VisibleColumns))
	for _, c := range v.VisibleColumns {
		if pinnedSet[c] {
			out = append(out, c)
		}
	}
	out = append(out, newUnpinnedOrder...)
	v.VisibleColumns = out
	return true
}
