package models

import "sort"

// The fixed enumerations used for validating and populating choice lists. They are built once when the package is
// loaded and never modified afterwards.
var (
	genreList = []string{
		"Alternative",
		"Blues",
		"Classical",
		"Country",
		"Electronic",
		"Folk",
		"Funk",
		"Hip-Hop",
		"Heavy Metal",
		"Instrumental",
		"Jazz",
		"Musical Theatre",
		"Pop",
		"Punk",
		"R&B",
		"Reggae",
		"Rock n Roll",
		"Soul",
		"Other",
	}
	stateList = []string{
		"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
		"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
		"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
		"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
		"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
		"WY",
	}

	genreSet = toSet(genreList)
	stateSet = toSet(stateList)
)

func toSet(values []string) map[string]bool {
	ret := make(map[string]bool, len(values))
	for _, v := range values {
		ret[v] = true
	}
	return ret
}

// Enums holds the choice lists for genres and states
type Enums struct {
	Genres []string `json:"genres"`
	States []string `json:"states"`
}

// GetEnums returns copies of the genre and state lists. States are sorted alphabetically.
func GetEnums() Enums {
	genres := append([]string(nil), genreList...)
	states := append([]string(nil), stateList...)
	sort.Strings(states)
	return Enums{Genres: genres, States: states}
}

// ValidGenre checks if the given label is a member of the genre enumeration
func ValidGenre(genre string) bool {
	return genreSet[genre]
}

// ValidState checks if the given code is a member of the state enumeration
func ValidState(state string) bool {
	return stateSet[state]
}
