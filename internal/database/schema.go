package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied statement by statement on every start.  Every statement
// is create-if-not-exists so repeated runs are no-ops.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL DEFAULT '',
		name          VARCHAR(255) NOT NULL,
		mobile        VARCHAR(15) NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email),
		UNIQUE KEY uq_users_mobile (mobile)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id           BIGINT UNSIGNED NOT NULL,
		flight_number     VARCHAR(20) NOT NULL,
		airline           VARCHAR(100) NOT NULL,
		origin            CHAR(3) NOT NULL,
		destination       CHAR(3) NOT NULL,
		departure_time    DATETIME NOT NULL,
		arrival_time      DATETIME NOT NULL,
		price             DECIMAL(10, 2) NOT NULL,
		currency          CHAR(3) NOT NULL DEFAULT 'INR',
		cabin_class       VARCHAR(20) NOT NULL DEFAULT 'ECONOMY',
		booking_reference VARCHAR(36) NOT NULL,
		status            ENUM('confirmed', 'cancelled', 'completed') NOT NULL DEFAULT 'confirmed',
		created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bookings_reference (booking_reference),
		KEY idx_bookings_user (user_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// EnsureSchema creates the users and bookings tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
