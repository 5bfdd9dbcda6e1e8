package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/models"
)

// Connect opens the database and returns the handle. The handle is injected
// into the router and stores at startup; nothing reads it from package state.
func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Team{},
		&models.Project{},
		&models.Task{},
	}

	migrator := conn.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := conn.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
