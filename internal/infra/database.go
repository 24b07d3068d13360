package infra

import (
	"fmt"

	"purobeach/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// and then applies the idempotent SQL patches GORM cannot express (partial
// indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Zona{},
		&model.Caracteristica{},
		&model.Preferencia{},
		&model.Mobiliario{},
		&model.Cliente{},
		&model.EstadoReserva{},
		&model.Paquete{},
		&model.Reserva{},
		&model.HistorialEstado{},
		&model.Asignacion{},
		&model.BloqueoMobiliario{},
		&model.ListaEspera{},
		&model.Incidencia{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Safe to re-run on an already-patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// One live assignment per (mobiliario, fecha). The partial predicate
		// means released assignments (activa = false) do not block re-booking,
		// while two concurrent check-then-insert transactions cannot both
		// commit a live row for the same unit and date.
		{"partial unique index on live assignments", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_asignaciones_mobiliario_fecha_activa') THEN
    CREATE UNIQUE INDEX uq_asignaciones_mobiliario_fecha_activa
        ON asignaciones (mobiliario_id, fecha)
        WHERE activa;
  END IF;
END $$`},
		// Partial index backing the incident retry cron query.
		{"pending incident retry index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_incidencias_pending_retry') THEN
    CREATE INDEX idx_incidencias_pending_retry
        ON incidencias (next_retry_at)
        WHERE estado = 'pendiente';
  END IF;
END $$`},
		// At most one default state.
		{"single default state index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_estados_reserva_default') THEN
    CREATE UNIQUE INDEX uq_estados_reserva_default
        ON estados_reserva ((1))
        WHERE es_default;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
