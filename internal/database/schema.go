package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitSchema creates the tables the operations engine touches. The DDL is
// kept portable between postgres and the sqlite databases the tests run on.
func InitSchema(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS merchandise (
			store_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			product_name VARCHAR(100) NOT NULL,
			stock_quantity INTEGER NOT NULL,
			buy_price DECIMAL(10,2) NOT NULL,
			market_price DECIMAL(10,2) NOT NULL,
			production_date DATE NOT NULL,
			expiration_date DATE,
			supplier_id BIGINT NOT NULL,
			PRIMARY KEY (store_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS discounts (
			discount_id BIGINT PRIMARY KEY,
			product_id BIGINT NOT NULL,
			store_id BIGINT NOT NULL,
			discount_start_date DATE NOT NULL,
			discount_end_date DATE NOT NULL,
			promotion DECIMAL(5,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id BIGINT PRIMARY KEY,
			purchase_date DATE NOT NULL,
			total_price DECIMAL(10,2) NOT NULL,
			customer_id BIGINT,
			staff_id BIGINT,
			store_id BIGINT,
			product_list TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transfers (
			store1_id BIGINT NOT NULL,
			store2_id BIGINT NOT NULL,
			product1_id BIGINT NOT NULL,
			product2_id BIGINT NOT NULL,
			transfer_date DATE NOT NULL,
			staff_id BIGINT NOT NULL,
			PRIMARY KEY (store1_id, store2_id, product1_id, product2_id)
		)`,
		`CREATE TABLE IF NOT EXISTS rewards (
			reward_id BIGINT PRIMARY KEY,
			check_amount_owed DECIMAL(10,2) NOT NULL,
			staff_id BIGINT NOT NULL,
			customer_id BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS club_members (
			customer_id BIGINT PRIMARY KEY,
			membership_level VARCHAR(50) NOT NULL,
			cust_status VARCHAR(50) NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}

	return nil
}
