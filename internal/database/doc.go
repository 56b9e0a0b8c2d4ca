// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── excluded/        # Learned (excluded) vocabulary records
//
// The vocabulary itself is not stored here: it is read from the CSV sheet
// by internal/vocabulary. The database only keeps state that the learner
// creates, which today is the set of records marked as learned.
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./wortschatz.db")
//	repo := excluded.NewRepository(db.DB)
//	ids, err := repo.ListExcluded()
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in AutoMigrate
//  5. Add compile-time interface check in internal/interfaces
package database
