package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_type') THEN
			CREATE TYPE vehicle_type AS ENUM ('CAR', 'VAN', 'TRUCK', 'BUS');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('AVAILABLE', 'IN_USE', 'OUT_OF_ORDER');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'license_type') THEN
			CREATE TYPE license_type AS ENUM ('B', 'C', 'D', 'CE', 'DE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'driver_status') THEN
			CREATE TYPE driver_status AS ENUM ('ACTIVE', 'ON_LEAVE', 'SUSPENDED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'assignment_action') THEN
			CREATE TYPE assignment_action AS ENUM ('ASSIGNED', 'UNASSIGNED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id BIGSERIAL PRIMARY KEY,
		first_name VARCHAR(64) NOT NULL,
		last_name VARCHAR(64) NOT NULL,
		license_number VARCHAR(32) NOT NULL UNIQUE,
		license_type license_type NOT NULL,
		date_of_birth DATE NOT NULL,
		phone_number VARCHAR(32),
		email VARCHAR(128),
		status driver_status NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_drivers_status ON drivers (status);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGSERIAL PRIMARY KEY,
		license_plate VARCHAR(16) NOT NULL UNIQUE,
		brand VARCHAR(64) NOT NULL,
		model VARCHAR(64) NOT NULL,
		production_year INT NOT NULL,
		type vehicle_type NOT NULL,
		registration_date DATE NOT NULL,
		technical_inspection_date DATE NOT NULL,
		mileage DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (mileage >= 0),
		status vehicle_status NOT NULL DEFAULT 'AVAILABLE',
		driver_id BIGINT REFERENCES drivers(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles (status);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_type ON vehicles (type);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_brand_model ON vehicles (brand, model);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_driver_id ON vehicles (driver_id);`,
	`CREATE TABLE IF NOT EXISTS assignment_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id BIGINT NOT NULL,
		driver_id BIGINT NOT NULL,
		action assignment_action NOT NULL,
		note TEXT,
		changed_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_assignment_log_vehicle_id ON assignment_log (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_assignment_log_driver_id ON assignment_log (driver_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_drivers_updated_at') THEN
			CREATE TRIGGER trg_drivers_updated_at
				BEFORE UPDATE ON drivers
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicles_updated_at') THEN
			CREATE TRIGGER trg_vehicles_updated_at
				BEFORE UPDATE ON vehicles
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
