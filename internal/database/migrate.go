package database

import (
	"context"
	"database/sql"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS postings (
	id UUID PRIMARY KEY,
	requester_id UUID NOT NULL,
	service TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	quantity INT NOT NULL DEFAULT 1,
	schedule_type TEXT NOT NULL,
	start_date DATE,
	start_time TEXT NOT NULL DEFAULT '',
	end_time TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL DEFAULT '',
	recur_interval INT NOT NULL DEFAULT 1,
	days_of_week INT[] NOT NULL DEFAULT '{}',
	recurrence_end_date DATE,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	posting_id UUID NOT NULL REFERENCES postings(id),
	provider_id UUID NOT NULL,
	booking_id UUID,
	status TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	expires_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (posting_id, provider_id)
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	application_id UUID NOT NULL REFERENCES applications(id),
	provider_id UUID NOT NULL,
	requester_id UUID NOT NULL,
	reference TEXT NOT NULL DEFAULT '',
	service TEXT NOT NULL DEFAULT '',
	unit_price_cents BIGINT NOT NULL DEFAULT 0,
	quantity INT NOT NULL DEFAULT 1,
	total_cents BIGINT NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	schedule_type TEXT NOT NULL,
	start_date DATE,
	start_time TEXT NOT NULL DEFAULT '',
	end_time TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL DEFAULT '',
	recur_interval INT NOT NULL DEFAULT 1,
	days_of_week INT[] NOT NULL DEFAULT '{}',
	recurrence_end_date DATE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS booking_details (
	id UUID PRIMARY KEY,
	booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
	occur_date DATE NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS provider_services (
	id UUID PRIMARY KEY,
	provider_id UUID NOT NULL,
	label TEXT NOT NULL,
	unit_price_cents BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sequences (
	owner_id UUID NOT NULL,
	prefix TEXT NOT NULL,
	value BIGINT NOT NULL,
	PRIMARY KEY (owner_id, prefix)
);

CREATE INDEX IF NOT EXISTS idx_applications_posting ON applications(posting_id);
CREATE INDEX IF NOT EXISTS idx_applications_expiry ON applications(expires_at) WHERE status = 'pending';
CREATE INDEX IF NOT EXISTS idx_bookings_provider_status ON bookings(provider_id, status);
CREATE INDEX IF NOT EXISTS idx_booking_details_booking ON booking_details(booking_id);
CREATE INDEX IF NOT EXISTS idx_booking_details_date ON booking_details(occur_date);
CREATE INDEX IF NOT EXISTS idx_provider_services_provider ON provider_services(provider_id);
`

func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}
