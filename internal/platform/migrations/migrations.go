// Package migrations creates and evolves the PostgreSQL schema.
package migrations

import (
	"gorm.io/gorm"

	accountspostgres "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/persistence/postgres"
	gatewaypostgres "github.com/Apurer/go-gin-adoption-server/internal/gateway/postgres"
)

// Run applies the schema for the gateway tables and the session store.
// Tables are migrated in dependency order so foreign keys resolve.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	models := append(gatewaypostgres.Models(), accountspostgres.Models()...)
	return db.AutoMigrate(models...)
}
