package structdiff

// Stats holds statistical metadata about a change list
type Stats struct {
	Inserts int `json:"inserts,omitempty"` // count of New records, array insertions included
	Deletes int `json:"deletes,omitempty"` // count of Deleted records, array removals included
	Updates int `json:"updates,omitempty"` // count of Edited records
}

// Total returns the number of counted records
func (s Stats) Total() int {
	return s.Inserts + s.Deletes + s.Updates
}

// NodeChange returns the net value-count shift between left & right
func (s Stats) NodeChange() int {
	return s.Inserts - s.Deletes
}

// Stats tallies the records by kind. ArrayChange records count under the
// kind of their wrapped item.
func (cs Changes) Stats() Stats {
	st := Stats{}
	for _, c := range cs {
		st.tally(c)
	}
	return st
}

func (st *Stats) tally(c Change) {
	switch c := c.(type) {
	case *New:
		st.Inserts++
	case *Deleted:
		st.Deletes++
	case *Edited:
		st.Updates++
	case *ArrayChange:
		st.tally(c.Item)
	}
}
