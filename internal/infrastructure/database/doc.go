// Package database provides the SQLite store of the virtual drive.
//
// This package manages:
//   - The database connection (WAL mode, busy timeout, single writer)
//   - Forward schema migrations registered by the migrations package
//
// Security Considerations:
//   - All queries use parameterised statements
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql, with an
// optional matching .down.sql kept for manual rollback.
package database
