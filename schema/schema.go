package schema

import (
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// InitializeSchema sets up the tables and indexes backing stored reports.
func InitializeSchema(db *surrealdb.DB) error {
	schemas := []string{
		// File-level reports
		`DEFINE TABLE reports SCHEMAFULL;
		 DEFINE FIELD path ON reports TYPE string;
		 DEFINE FIELD sloc_logical ON reports TYPE int;
		 DEFINE FIELD sloc_physical ON reports TYPE int;
		 DEFINE FIELD cyclomatic ON reports TYPE int;
		 DEFINE FIELD maintainability ON reports TYPE float;
		 DEFINE FIELD params ON reports TYPE float;
		 DEFINE FIELD function_count ON reports TYPE int;
		 DEFINE FIELD effort ON reports TYPE float;
		 DEFINE FIELD volume ON reports TYPE float;
		 DEFINE FIELD created_at ON reports TYPE datetime DEFAULT time::now();
		 DEFINE INDEX report_path ON reports FIELDS path;`,

		// Per-function metrics
		`DEFINE TABLE functions SCHEMAFULL;
		 DEFINE FIELD path ON functions TYPE string;
		 DEFINE FIELD name ON functions TYPE string;
		 DEFINE FIELD line ON functions TYPE int;
		 DEFINE FIELD sloc_logical ON functions TYPE int;
		 DEFINE FIELD sloc_physical ON functions TYPE int;
		 DEFINE FIELD cyclomatic ON functions TYPE int;
		 DEFINE FIELD cyclomatic_density ON functions TYPE float;
		 DEFINE FIELD params ON functions TYPE int;
		 DEFINE FIELD volume ON functions TYPE float;
		 DEFINE FIELD difficulty ON functions TYPE float;
		 DEFINE FIELD effort ON functions TYPE float;
		 DEFINE FIELD bugs ON functions TYPE float;
		 DEFINE FIELD created_at ON functions TYPE datetime DEFAULT time::now();
		 DEFINE INDEX func_name ON functions FIELDS name;
		 DEFINE INDEX func_path ON functions FIELDS path;`,

		// Extracted dependencies
		`DEFINE TABLE dependencies SCHEMAFULL;
		 DEFINE FIELD file ON dependencies TYPE string;
		 DEFINE FIELD line ON dependencies TYPE int;
		 DEFINE FIELD type ON dependencies TYPE string;
		 DEFINE FIELD path ON dependencies TYPE string;
		 DEFINE FIELD created_at ON dependencies TYPE datetime DEFAULT time::now();
		 DEFINE INDEX dep_path ON dependencies FIELDS path;
		 DEFINE INDEX dep_file ON dependencies FIELDS file;`,
	}

	for _, schema := range schemas {
		if _, err := surrealdb.Query[any](db, schema, map[string]interface{}{}); err != nil {
			return fmt.Errorf("schema initialization error: %w", err)
		}
	}

	return nil
}
