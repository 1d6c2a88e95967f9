// Package database manages the connection to the machine registry store.
//
// It wraps GORM with two drivers: sqlite (the default, the registry is a
// handful of rows) and mysql for deployments that centralize configuration.
// Connection pooling, DSN construction and the initial ping live here so
// callers only deal with a ready *gorm.DB.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
package database
