package migrations

func init() {
	Register(Migration{
		Timestamp:   "20260815-000000",
		Description: "Add webhook_payloads table",
		Up: []string{
			// One row per received webhook delivery, append-only.
			// entity_uid intentionally carries no foreign key: entities
			// live in the Backstage catalog, not in this database.
			`CREATE TABLE IF NOT EXISTS webhook_payloads (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				entity_uid TEXT NOT NULL,
				payload TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_webhook_payloads_entity_uid ON webhook_payloads(entity_uid)`,
			`CREATE INDEX IF NOT EXISTS idx_webhook_payloads_entity_created ON webhook_payloads(entity_uid, created_at)`,
		},
	})
}
