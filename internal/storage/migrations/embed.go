// Package migrations embeds and applies the schema for both backends: the
// analysis_records audit table in PostgreSQL and the evaluation_events
// stream in ClickHouse. Files run in lexical order and must be idempotent.
package migrations

import "embed"

// PostgresFS embeds the analysis_records migration files.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds the evaluation_events migration files.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
