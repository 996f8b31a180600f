package log

const (
	// FldFile is the name of the log field for storing file name information
	FldFile = "file"
	// FldPath is the name of the log field for storing path name information
	FldPath = "path"
	// FldTransport is the name of the log field for storing a transport name
	FldTransport = "transport"
	// FldRequest is the name of the log field for storing the ID generated for an incoming request
	FldRequest = "req"
	// FldMethod is the name of the service method an endpoint call is dispatched to
	FldMethod = "method"
	// FldDuration is the time an endpoint call took
	FldDuration = "took"
	// FldVersion is the version number of the application
	FldVersion = "ver"
	// FldID is the ID of an entity used in the log entry
	FldID = "id"
	// FldName is the name of a venue or artist used in the log entry
	FldName = "name"
	// FldVenue is the ID of a venue referenced in the log entry
	FldVenue = "venue"
	// FldArtist is the ID of an artist referenced in the log entry
	FldArtist = "artist"
	// FldSearch is a search term used in a search
	FldSearch = "search"
	// FldMigration is the version of a database migration
	FldMigration = "migration"
	// FldEnv is the name of an environment variable
	FldEnv = "env"
	// FldAddress is a network address to listen at
	FldAddress = "addr"
)
