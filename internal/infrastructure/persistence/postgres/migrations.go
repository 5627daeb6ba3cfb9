// Package postgres implements the PostgreSQL roster backend for watson.
package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE PERSONS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create persons table
-- Version: 001

-- The roster. A record's identity is its exact name, so the unique
-- constraint is on name as written, not on a normalized form.
-- position carries the storage order that listings and the durable
-- sort rely on; collection-valued fields live in JSONB columns.
CREATE TABLE IF NOT EXISTS persons (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL,
    email TEXT NOT NULL,
    address TEXT NOT NULL,
    class TEXT NOT NULL,
    tags JSONB NOT NULL DEFAULT '[]'::jsonb,
    attendance JSONB NOT NULL DEFAULT '{}'::jsonb,
    remarks JSONB NOT NULL DEFAULT '[]'::jsonb,
    subjects JSONB NOT NULL DEFAULT '[]'::jsonb,
    position INTEGER NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_position CHECK (position >= 0)
);

-- Listings always read in storage order
CREATE INDEX IF NOT EXISTS idx_persons_position ON persons(position);
`

const migration001Down = `
DROP INDEX IF EXISTS idx_persons_position;
DROP TABLE IF EXISTS persons;
`
