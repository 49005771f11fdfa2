package standings

// Owner is a fantasy-pool participant and the national teams they drafted.
type Owner struct {
	Name  string   `json:"name" yaml:"name"`
	Teams []string `json:"teams" yaml:"teams"`
}

// Roster is the ordered list of owners. Order is significant: it breaks ties in the standings.
type Roster []Owner

// DefaultRoster is the draft used when no roster file is configured.
func DefaultRoster() Roster {
	return Roster{
		{Name: "Sean", Teams: []string{"SWE", "CZE", "LAT", "DEN"}},
		{Name: "John", Teams: []string{"CAN", "SUI", "SVK", "FRA"}},
		{Name: "Roland", Teams: []string{"USA", "FIN", "GER", "ITA"}},
	}
}

// OwnerOf returns the name of the first owner holding team, or "" if nobody drafted it.
func (r Roster) OwnerOf(team string) string {
	if i := r.IndexOf(team); i >= 0 {
		return r[i].Name
	}
	return ""
}

// IndexOf returns the roster position of the first owner holding team, or -1.
func (r Roster) IndexOf(team string) int {
	for i, o := range r {
		for _, t := range o.Teams {
			if t == team {
				return i
			}
		}
	}
	return -1
}
