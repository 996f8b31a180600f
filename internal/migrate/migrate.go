// Package migrate handles SQL database migration for the internal Fyyur database
package migrate

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/repos"
)

var migrations []dbMigration

type dbMigration struct {
	Version uint
	Queries []string
}

// Execute runs the current DB migration on the given database. All queries of one migration and the update of the
// migration state share a single transaction.
func (mig *dbMigration) Execute(db *sqlx.DB, logger *logrus.Entry) error {
	// Check if the migration has already run
	query := `SELECT success FROM Migrations WHERE version = ?`
	var success = false
	err := db.QueryRow(query, mig.Version).Scan(&success)
	if err != nil && err != sql.ErrNoRows {
		logger.WithError(err).Error("Failed to fetch version information")
		return errors.Wrap(err, "Execute: Failed to fetch migration state")
	}
	if success {
		return nil
	}
	// We need to execute this migration
	logger = logger.WithField(log.FldMigration, mig.Version)
	logger.Info("Executing DB migration")
	return repos.WithTx(db, func(tx *sqlx.Tx) error {
		for i, query := range mig.Queries {
			logger.Debugf("Query %d of %d...", i+1, len(mig.Queries))
			if _, err := tx.Exec(query); err != nil {
				logger.WithError(err).Errorf("Query #%d failed", i+1)
				return errors.Wrapf(err, "Execute: Query #%d of migration #%d failed", i+1, mig.Version)
			}
		}
		// Queries executed successfully - save our status
		_, err := tx.Exec(`REPLACE INTO Migrations(version, success) VALUES(?, 1)`, mig.Version)
		return errors.Wrap(err, "Execute: Failed to store migration state")
	})
}

// ExecuteMigrationsOnDb executes the database migrations on the given database instance
func ExecuteMigrationsOnDb(db *sqlx.DB, logger *logrus.Entry) error {
	// Create the migrations table if it does not exist, yet
	query := `CREATE TABLE IF NOT EXISTS Migrations (
                version   INTEGER NOT NULL,
                success   INTEGER NOT NULL DEFAULT 0,
                PRIMARY KEY(version)
            )`
	if _, err := db.Exec(query); err != nil {
		logger.WithError(err).Error("Failed to create migrations table")
		return errors.Wrap(err, "ExecuteMigrationsOnDb: Failed to create migrations table")
	}
	for _, mig := range migrations {
		if err := mig.Execute(db, logger); err != nil {
			logger.WithError(err).Errorf("Failed to execute migration #%d", mig.Version)
			return err
		}
	}
	return nil
}

// For now, the migrations are part of the package...
func init() {
	migrations = []dbMigration{
		{
			Version: 1,
			Queries: []string{
				`CREATE TABLE "Venues" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR(120) NOT NULL,
                    city VARCHAR(120) NOT NULL,
                    state VARCHAR(2) NOT NULL,
                    address VARCHAR(120) NOT NULL,
                    phone VARCHAR(120) NOT NULL,
                    imageLink VARCHAR(500) NOT NULL DEFAULT '',
                    website VARCHAR(500) NOT NULL DEFAULT '',
                    facebookLink VARCHAR(500) NOT NULL DEFAULT '',
                    seekingTalent BOOLEAN NOT NULL DEFAULT 0,
                    seekingDescription TEXT NOT NULL DEFAULT '',
                    genres TEXT NOT NULL DEFAULT '[]',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Artists" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR(120) NOT NULL,
                    city VARCHAR(120) NOT NULL,
                    state VARCHAR(2) NOT NULL,
                    phone VARCHAR(120) NOT NULL,
                    website VARCHAR(500) NOT NULL DEFAULT '',
                    facebookLink VARCHAR(500) NOT NULL DEFAULT '',
                    seekingVenue BOOLEAN NOT NULL DEFAULT 0,
                    seekingDescription TEXT NOT NULL DEFAULT '',
                    imageLink VARCHAR(500) NOT NULL DEFAULT '',
                    genres TEXT NOT NULL DEFAULT '[]',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Shows" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    artistId INTEGER NOT NULL REFERENCES Artists(id) ON DELETE RESTRICT,
                    venueId INTEGER NOT NULL REFERENCES Venues(id) ON DELETE RESTRICT,
                    startTime DATETIME NOT NULL,
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE INDEX idx_venue_location ON Venues (state ASC, city ASC);`,
				`CREATE INDEX idx_venue_name ON Venues (name ASC);`,
				`CREATE INDEX idx_artist_name ON Artists (name ASC);`,
				`CREATE INDEX idx_show_venue ON Shows (venueId ASC, startTime ASC);`,
				`CREATE INDEX idx_show_artist ON Shows (artistId ASC, startTime ASC);`,
			},
		},
	}
}
