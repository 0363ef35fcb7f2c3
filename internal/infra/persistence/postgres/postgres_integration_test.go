package postgres_test

import (
	"context"
	"fmt"

	"storefront/internal/infra/persistence/model"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// uuidGenerateV7 backfills the UUID v7 generator the schema defaults rely on.
// Production databases provision it in migrations.
const uuidGenerateV7 = `
create or replace function uuid_generate_v7()
returns uuid
as $$
begin
  return encode(
    set_bit(
      set_bit(
        overlay(uuid_send(gen_random_uuid())
                placing substring(int8send(floor(extract(epoch from clock_timestamp()) * 1000)::bigint) from 3)
                from 1 for 6
        ),
        52, 1
      ),
      53, 1
    ),
    'hex')::uuid;
end
$$
language plpgsql
volatile;
`

func startPostgres(ctx context.Context) (*tcpostgres.PostgresContainer, string, error) {
	postgresContainer, err := tcpostgres.Run(ctx, "postgres:17.6-alpine3.22",
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func newTestDB(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}

	if err := db.Exec(uuidGenerateV7).Error; err != nil {
		return nil, fmt.Errorf("create uuid_generate_v7: %w", err)
	}

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return db, nil
}

func closeTestDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB: %w", err)
	}

	return sqlDB.Close()
}
