package internal

import (
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/models"
)

// VenueEndpoints is a collection of endpoints to the venue service
type VenueEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Get        endpoint.Endpoint
	GetForEdit endpoint.Endpoint
	Create     endpoint.Endpoint
	Update     endpoint.Endpoint
	Delete     endpoint.Endpoint
}

// ArtistEndpoints is a collection of endpoints to the artist service
type ArtistEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Get        endpoint.Endpoint
	GetForEdit endpoint.Endpoint
	Create     endpoint.Endpoint
	Update     endpoint.Endpoint
	Delete     endpoint.Endpoint
}

// ShowEndpoints is a collection of endpoints to the show service
type ShowEndpoints struct {
	List   endpoint.Endpoint
	Get    endpoint.Endpoint
	Create endpoint.Endpoint
}

type basicResponse struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data,omitempty"`
}

// venueForm is the content of the venue edit form
type venueForm struct {
	ID uint `json:"id"`
	models.VenueInput
}

// artistForm is the content of the artist edit form
type artistForm struct {
	ID uint `json:"id"`
	models.ArtistInput
}

// MakeEnumsEndpoint returns an endpoint delivering the allowed genres and states
func MakeEnumsEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return basicResponse{true, models.GetEnums()}, nil
	}
}

// -- Venues -----------------------------------------------------------------------------------------------------------

// MakeVenueEndpoints creates the endpoints needed for using the venue service
func MakeVenueEndpoints(s VenueService, m *EndpointMetrics) VenueEndpoints {
	return VenueEndpoints{
		List:       wrap(m, "venues.list", MakeListVenuesEndpoint(s)),
		Search:     wrap(m, "venues.search", MakeSearchVenuesEndpoint(s)),
		Get:        wrap(m, "venues.get", MakeGetVenueEndpoint(s)),
		GetForEdit: wrap(m, "venues.edit", MakeGetVenueForEditEndpoint(s)),
		Create:     wrap(m, "venues.create", MakeCreateVenueEndpoint(s)),
		Update:     wrap(m, "venues.update", MakeUpdateVenueEndpoint(s)),
		Delete:     wrap(m, "venues.delete", MakeDeleteVenueEndpoint(s)),
	}
}

// MakeListVenuesEndpoint returns an endpoint calling the List method on the provided VenueService
func MakeListVenuesEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		groups, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, groups}, nil
	}
}

// MakeSearchVenuesEndpoint returns an endpoint calling the Search method on the provided VenueService
func MakeSearchVenuesEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		search, ok := request.(Search)
		if !ok {
			return nil, fmt.Errorf("illegal search parameter")
		}
		result, err := s.Search(ctx, search.Term)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, result}, nil
	}
}

// MakeGetVenueEndpoint returns an endpoint calling the Get method on the provided VenueService
func MakeGetVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal venue ID parameter")
		}
		detail, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, detail}, nil
	}
}

// MakeGetVenueForEditEndpoint returns an endpoint delivering a venue in the shape of its edit form
func MakeGetVenueForEditEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal venue ID parameter")
		}
		v, err := s.GetForEdit(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, venueForm{v.ID, v.Input()}}, nil
	}
}

// MakeCreateVenueEndpoint returns an endpoint calling the Create method on the provided VenueService
func MakeCreateVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		in, ok := request.(models.VenueInput)
		if !ok {
			return nil, fmt.Errorf("illegal venue parameter")
		}
		v, err := s.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, v}, nil
	}
}

// MakeUpdateVenueEndpoint returns an endpoint calling the Update method on the provided VenueService
func MakeUpdateVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(venueUpdateRequest)
		if !ok {
			return nil, fmt.Errorf("illegal venue parameter")
		}
		v, err := s.Update(ctx, req.ID, req.Input)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, v}, nil
	}
}

// MakeDeleteVenueEndpoint returns an endpoint calling the Delete method on the provided VenueService
func MakeDeleteVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal venue ID parameter")
		}
		if err := s.Delete(ctx, id); err != nil {
			return nil, err
		}
		return basicResponse{true, nil}, nil
	}
}

// -- Artists ----------------------------------------------------------------------------------------------------------

// MakeArtistEndpoints creates the endpoints needed for using the artist service
func MakeArtistEndpoints(s ArtistService, m *EndpointMetrics) ArtistEndpoints {
	return ArtistEndpoints{
		List:       wrap(m, "artists.list", MakeListArtistsEndpoint(s)),
		Search:     wrap(m, "artists.search", MakeSearchArtistsEndpoint(s)),
		Get:        wrap(m, "artists.get", MakeGetArtistEndpoint(s)),
		GetForEdit: wrap(m, "artists.edit", MakeGetArtistForEditEndpoint(s)),
		Create:     wrap(m, "artists.create", MakeCreateArtistEndpoint(s)),
		Update:     wrap(m, "artists.update", MakeUpdateArtistEndpoint(s)),
		Delete:     wrap(m, "artists.delete", MakeDeleteArtistEndpoint(s)),
	}
}

// MakeListArtistsEndpoint returns an endpoint calling the List method on the provided ArtistService
func MakeListArtistsEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		artists, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, artists}, nil
	}
}

// MakeSearchArtistsEndpoint returns an endpoint calling the Search method on the provided ArtistService
func MakeSearchArtistsEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		search, ok := request.(Search)
		if !ok {
			return nil, fmt.Errorf("illegal search parameter")
		}
		result, err := s.Search(ctx, search.Term)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, result}, nil
	}
}

// MakeGetArtistEndpoint returns an endpoint calling the Get method on the provided ArtistService
func MakeGetArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal artist ID parameter")
		}
		detail, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, detail}, nil
	}
}

// MakeGetArtistForEditEndpoint returns an endpoint delivering an artist in the shape of its edit form
func MakeGetArtistForEditEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal artist ID parameter")
		}
		a, err := s.GetForEdit(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, artistForm{a.ID, a.Input()}}, nil
	}
}

// MakeCreateArtistEndpoint returns an endpoint calling the Create method on the provided ArtistService
func MakeCreateArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		in, ok := request.(models.ArtistInput)
		if !ok {
			return nil, fmt.Errorf("illegal artist parameter")
		}
		a, err := s.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, a}, nil
	}
}

// MakeUpdateArtistEndpoint returns an endpoint calling the Update method on the provided ArtistService
func MakeUpdateArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(artistUpdateRequest)
		if !ok {
			return nil, fmt.Errorf("illegal artist parameter")
		}
		a, err := s.Update(ctx, req.ID, req.Input)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, a}, nil
	}
}

// MakeDeleteArtistEndpoint returns an endpoint calling the Delete method on the provided ArtistService
func MakeDeleteArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal artist ID parameter")
		}
		if err := s.Delete(ctx, id); err != nil {
			return nil, err
		}
		return basicResponse{true, nil}, nil
	}
}

// -- Shows ------------------------------------------------------------------------------------------------------------

// MakeShowEndpoints creates the endpoints needed for using the show service
func MakeShowEndpoints(s ShowService, m *EndpointMetrics) ShowEndpoints {
	return ShowEndpoints{
		List:   wrap(m, "shows.list", MakeListShowsEndpoint(s)),
		Get:    wrap(m, "shows.get", MakeGetShowEndpoint(s)),
		Create: wrap(m, "shows.create", MakeCreateShowEndpoint(s)),
	}
}

// MakeListShowsEndpoint returns an endpoint calling the List method on the provided ShowService
func MakeListShowsEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		shows, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, shows}, nil
	}
}

// MakeGetShowEndpoint returns an endpoint calling the Get method on the provided ShowService
func MakeGetShowEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal show ID parameter")
		}
		show, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, show}, nil
	}
}

// MakeCreateShowEndpoint returns an endpoint calling the Create method on the provided ShowService
func MakeCreateShowEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		in, ok := request.(models.ShowInput)
		if !ok {
			return nil, fmt.Errorf("illegal show parameter")
		}
		show, err := s.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, show}, nil
	}
}
