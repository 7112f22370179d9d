package postgres

import "github.com/nedconnect/backend/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.Account{},
	&entity.Society{},
	&entity.Event{},
	&entity.Registration{},
}
