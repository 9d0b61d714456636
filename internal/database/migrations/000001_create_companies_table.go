package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func init() {
	migrationsList = append(migrationsList, CreateCompaniesTable())
}

// CreateCompaniesTable creates the companies table and its transaction cache
func CreateCompaniesTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_companies_table",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

				CREATE TABLE IF NOT EXISTS companies (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					name VARCHAR(255) NOT NULL,
					industry VARCHAR(100) NOT NULL,
					email VARCHAR(255) NOT NULL,
					website VARCHAR(255),
					description TEXT,
					contact_person VARCHAR(255),
					phone VARCHAR(50),
					wallet_address VARCHAR(64),
					registered_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					status VARCHAR(20) NOT NULL DEFAULT 'pending',
					rejection_reason TEXT,
					verified_at TIMESTAMP WITH TIME ZONE,
					token_balances JSONB,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);
				CREATE INDEX IF NOT EXISTS idx_companies_wallet_address ON companies(wallet_address);
				CREATE INDEX IF NOT EXISTS idx_companies_status ON companies(status);
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS company_transactions (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					company_id UUID NOT NULL REFERENCES companies(id),
					type VARCHAR(20),
					symbol VARCHAR(20),
					amount DECIMAL(30, 18),
					reference VARCHAR(100),
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX IF NOT EXISTS idx_company_transactions_company_id ON company_transactions(company_id);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec("DROP TABLE IF EXISTS company_transactions").Error; err != nil {
				return err
			}
			return tx.Exec("DROP TABLE IF EXISTS companies").Error
		},
	}
}
