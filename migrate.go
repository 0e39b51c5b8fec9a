package main

// setupDatabase creates tables, indexes and the category seed. Run via the
// -migrate flag; safe to re-run, everything is IF NOT EXISTS / ON CONFLICT.
func setupDatabase() error {
	conn, err := connectDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info().Msg("creating database schema")
	if err := ensureSchema(conn); err != nil {
		return err
	}
	logger.Info().Msg("schema created successfully")

	logger.Info().Msg("seeding categories")
	if err := seedCategories(conn); err != nil {
		return err
	}
	logger.Info().Msg("categories seeded successfully")

	return nil
}
