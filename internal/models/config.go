package models

import (
	"path"

	"github.com/kardianos/osext"
)

// AppConfig is the application's main configuration structure
type AppConfig struct {
	// The directory where Fyyur stores its database - defaults to the /data subdirectory of the folder, the
	// Fyyur executable resides in
	DataDir string `json:"dataDir" yaml:"dataDir"`
	// The IP address to listen at - including the port number
	ListenAddress string `json:"listenAddress" yaml:"listenAddress"`
	// The log level to use (panic, fatal, error, warn, info, debug, trace)
	LogLevel string `json:"logLevel" yaml:"logLevel"`
}

// GetDefaultConfig returns the default configuration values for the application
func GetDefaultConfig() (*AppConfig, error) {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		return nil, err
	}
	return &AppConfig{
		DataDir:       path.Join(execDir, "data"),
		ListenAddress: ":5000",
		LogLevel:      "info",
	}, nil
}
