package db

import (
	"github.com/nestnic/taskflow/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

// Migrate runs AutoMigrate for every entity against the given
// connection. Handler tests reuse it against an in-memory database.
func Migrate(conn *gorm.DB) error {
	entities := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Collaborator{},
		&models.JoinRequest{},
		&models.Task{},
		&models.Message{},
		&models.Notification{},
	}

	migrator := conn.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := conn.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
