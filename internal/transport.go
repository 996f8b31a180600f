package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
)

const (
	apiBasePath = "/api"
	// Header carrying the ID of a request back to the client
	requestIDHeader = "X-Request-Id"
)

// Defines an error that defines the HTTP status that should be returned
type httpStatuser interface {
	Status() int
}

// Defines an error that returns a machine-readable error code
type errorCoder interface {
	ErrorCode() string
}

// Defines an error that contains a data field with additional information
type dataBearer interface {
	Data() interface{}
}

type errorResponse struct {
	basicResponse
	// The error code
	Error   string      `json:"error"`
	Message string      `json:"errorMessage"`
	Details interface{} `json:"errorDetails,omitempty"`
}

// MakeHTTPHandler creates the main HTTP handler for the Fyyur service. The endpoint metrics are registered at the
// given registry, which is also exposed at /metrics.
func MakeHTTPHandler(
	vs VenueService,
	as ArtistService,
	ss ShowService,
	reg *prometheus.Registry,
	logger *logrus.Entry,
) http.Handler {
	r := mux.NewRouter()
	m := NewEndpointMetrics(reg)

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
		httptransport.ServerBefore(makeContextInjector(logger)),
		httptransport.ServerAfter(setRequestIDHeader),
	}
	api := r.PathPrefix(apiBasePath).Subrouter()

	// -- Venue service --------------------------------
	{
		vEp := MakeVenueEndpoints(vs, m)

		// List
		api.Methods(http.MethodGet).Path("/venues").Handler(httptransport.NewServer(
			vEp.List,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// Search
		api.Methods(http.MethodGet).Path("/venues/search").Handler(httptransport.NewServer(
			vEp.Search,
			decodeSearchRequest,
			encodeJSONResponse,
			options...,
		))

		// Create
		api.Methods(http.MethodPost).Path("/venues").Handler(httptransport.NewServer(
			vEp.Create,
			decodeVenueInput,
			encodeJSONResponse,
			options...,
		))

		// Get
		api.Methods(http.MethodGet).Path("/venues/{id}").Handler(httptransport.NewServer(
			vEp.Get,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))

		// GetForEdit
		api.Methods(http.MethodGet).Path("/venues/{id}/edit").Handler(httptransport.NewServer(
			vEp.GetForEdit,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))

		// Update
		api.Methods(http.MethodPut).Path("/venues/{id}").Handler(httptransport.NewServer(
			vEp.Update,
			decodeVenueUpdate,
			encodeJSONResponse,
			options...,
		))

		// Delete
		api.Methods(http.MethodDelete).Path("/venues/{id}").Handler(httptransport.NewServer(
			vEp.Delete,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))
	}

	// -- Artist service -------------------------------
	{
		aEp := MakeArtistEndpoints(as, m)

		// List
		api.Methods(http.MethodGet).Path("/artists").Handler(httptransport.NewServer(
			aEp.List,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// Search
		api.Methods(http.MethodGet).Path("/artists/search").Handler(httptransport.NewServer(
			aEp.Search,
			decodeSearchRequest,
			encodeJSONResponse,
			options...,
		))

		// Create
		api.Methods(http.MethodPost).Path("/artists").Handler(httptransport.NewServer(
			aEp.Create,
			decodeArtistInput,
			encodeJSONResponse,
			options...,
		))

		// Get
		api.Methods(http.MethodGet).Path("/artists/{id}").Handler(httptransport.NewServer(
			aEp.Get,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))

		// GetForEdit
		api.Methods(http.MethodGet).Path("/artists/{id}/edit").Handler(httptransport.NewServer(
			aEp.GetForEdit,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))

		// Update
		api.Methods(http.MethodPut).Path("/artists/{id}").Handler(httptransport.NewServer(
			aEp.Update,
			decodeArtistUpdate,
			encodeJSONResponse,
			options...,
		))

		// Delete
		api.Methods(http.MethodDelete).Path("/artists/{id}").Handler(httptransport.NewServer(
			aEp.Delete,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))
	}

	// -- Show service ---------------------------------
	{
		sEp := MakeShowEndpoints(ss, m)

		// List
		api.Methods(http.MethodGet).Path("/shows").Handler(httptransport.NewServer(
			sEp.List,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// Create
		api.Methods(http.MethodPost).Path("/shows").Handler(httptransport.NewServer(
			sEp.Create,
			decodeShowInput,
			encodeJSONResponse,
			options...,
		))

		// Get
		api.Methods(http.MethodGet).Path("/shows/{id}").Handler(httptransport.NewServer(
			sEp.Get,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))
	}

	// Genres and states for populating the forms
	api.Methods(http.MethodGet).Path("/enums").Handler(httptransport.NewServer(
		wrap(m, "enums", MakeEnumsEndpoint()),
		decodeNilRequest,
		encodeJSONResponse,
		options...,
	))

	// Simple alive answer for checking if HTTP can be reached
	r.Methods(http.MethodGet).Path("/alive").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		data := map[string]bool{"ok": true}
		json.NewEncoder(w).Encode(data)
	})

	r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

// decodeNilRequest just does nothing with the request. It is used for endpoints that don't need anything to be passed
func decodeNilRequest(_ context.Context, r *http.Request) (request interface{}, err error) {
	return nil, nil
}

// decodeSearchRequest reads the search term from the GET variable "search_term"
func decodeSearchRequest(_ context.Context, r *http.Request) (request interface{}, err error) {
	return Search{Term: r.URL.Query().Get("search_term")}, nil
}

// decodeJSONBody decodes the request's JSON body into target
func decodeJSONBody(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return MakeError(
			http.StatusBadRequest,
			ErrCodeIllegalJSON,
			fmt.Sprintf("Failed to decode JSON body: %v", err),
		)
	}
	return nil
}

// decodeVenueInput reads the data of a venue from the request's JSON body
func decodeVenueInput(_ context.Context, r *http.Request) (interface{}, error) {
	var in models.VenueInput
	if err := decodeJSONBody(r, &in); err != nil {
		return nil, err
	}
	return in, nil
}

// decodeArtistInput reads the data of an artist from the request's JSON body
func decodeArtistInput(_ context.Context, r *http.Request) (interface{}, error) {
	var in models.ArtistInput
	if err := decodeJSONBody(r, &in); err != nil {
		return nil, err
	}
	return in, nil
}

// decodeShowInput reads the data of a show from the request's JSON body
func decodeShowInput(_ context.Context, r *http.Request) (interface{}, error) {
	var in models.ShowInput
	if err := decodeJSONBody(r, &in); err != nil {
		return nil, err
	}
	return in, nil
}

// Decodes a venue from an update request where the ID of the venue is in the path
func decodeVenueUpdate(ctx context.Context, r *http.Request) (interface{}, error) {
	id, err := getUintFromPath("id", r)
	if err != nil {
		return nil, err
	}
	in, err := decodeVenueInput(ctx, r)
	if err != nil {
		return nil, err
	}
	return venueUpdateRequest{ID: id, Input: in.(models.VenueInput)}, nil
}

// Decodes an artist from an update request where the ID of the artist is in the path
func decodeArtistUpdate(ctx context.Context, r *http.Request) (interface{}, error) {
	id, err := getUintFromPath("id", r)
	if err != nil {
		return nil, err
	}
	in, err := decodeArtistInput(ctx, r)
	if err != nil {
		return nil, err
	}
	return artistUpdateRequest{ID: id, Input: in.(models.ArtistInput)}, nil
}

// getUintFromPath is a helper function that gets a uint from the given path variable
func getUintFromPath(varname string, r *http.Request) (uint, error) {
	errmsg := fmt.Sprintf("Value for '%s' is no valid unsigned integer", varname)
	vars := mux.Vars(r)
	str, ok := vars[varname]
	if !ok {
		return 0, MakeError(http.StatusBadRequest, ErrCodeInvalidUint, errmsg)
	}
	id, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, MakeError(http.StatusBadRequest, ErrCodeInvalidUint, errmsg)
	}
	return uint(id), nil
}

// Decodes an ID from the "id" path variable provided by GoRilla
func decodeIDFromPath(ctx context.Context, r *http.Request) (interface{}, error) {
	return getUintFromPath("id", r)
}

// Encodes a typical JSON response
func encodeJSONResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

// Builds an error response based on the incoming error
func encodeError(ctx context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		panic("encodeError with nil error")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if id := ctxhelper.RequestID(ctx); id != "" {
		w.Header().Set(requestIDHeader, id)
	}
	if st, ok := err.(httpStatuser); ok {
		w.WriteHeader(st.Status())
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}
	ret := errorResponse{
		basicResponse: basicResponse{false, nil},
		Message:       err.Error(),
		Error:         ErrCodeUnknown,
	}
	if cd, ok := err.(errorCoder); ok {
		ret.Error = cd.ErrorCode()
	}
	if db, ok := err.(dataBearer); ok {
		if data := db.Data(); data != nil {
			if err, ok := data.(error); ok {
				ret.Details = err.Error()
			} else {
				ret.Details = data
			}
		}
	}
	json.NewEncoder(w).Encode(&ret)
}

// makeContextInjector returns a function that gives every request its own ID and a logger carrying it
func makeContextInjector(logger *logrus.Entry) httptransport.RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		id := uuid.New().String()
		ctx = context.WithValue(ctx, ctxhelper.KeyRequestID, id)
		return ctxhelper.WithLogger(ctx, logger.WithFields(logrus.Fields{
			log.FldRequest: id,
			log.FldPath:    r.URL.Path,
		}))
	}
}

// setRequestIDHeader tells the client the ID its request has been logged with
func setRequestIDHeader(ctx context.Context, w http.ResponseWriter) context.Context {
	if id := ctxhelper.RequestID(ctx); id != "" {
		w.Header().Set(requestIDHeader, id)
	}
	return ctx
}
