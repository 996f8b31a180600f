package internal

import "github.com/derWhity/fyyur/internal/models"

// -- Request data -----------------------------------------------------------------------------------------------------

// Search describes a search request for venues or artists by name
type Search struct {
	// The string to search for - matches everything when empty
	Term string
}

// venueUpdateRequest carries the ID from the path together with the new venue data from the body
type venueUpdateRequest struct {
	ID    uint
	Input models.VenueInput
}

// artistUpdateRequest carries the ID from the path together with the new artist data from the body
type artistUpdateRequest struct {
	ID    uint
	Input models.ArtistInput
}
