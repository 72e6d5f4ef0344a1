package repositories

import (
	"errors"
	"log"

	"github.com/priyan-sh/dropgate/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when a row does not exist, so that
// callers never have to know about gorm error values.
var ErrNotFound = errors.New("record not found")

func ConnectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.File{},
		&models.Share{},
	); err != nil {
		return nil, err
	}
	log.Println("Successfully connected to database")
	return db, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
