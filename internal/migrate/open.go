package migrate

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	// The SQLite driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
)

// OpenDatabase opens the SQLite database stored in the given file and brings its schema up to date.
// Foreign key enforcement is switched on for every connection of the pool. Transactions take the write lock on
// BEGIN, so concurrent writers wait for each other up to the busy timeout instead of failing.
func OpenDatabase(fileName string, logger *logrus.Entry) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=1&_busy_timeout=5000&_txlock=immediate", fileName)
	logger.WithField(log.FldFile, fileName).Info("Opening database")
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "OpenDatabase: Failed to open database connection")
	}
	logger.Info("Performing database migrations...")
	if err = ExecuteMigrationsOnDb(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
