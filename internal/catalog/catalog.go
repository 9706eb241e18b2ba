// Package catalog exports a registry snapshot to a SQLite database for
// offline inspection. The database is written from scratch on every export;
// it is a view of the registry, never a source of truth.
package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/omen/pkg/object"
	"github.com/mesh-intelligence/omen/pkg/typespec"
)

//go:embed schema.sql
var schemaSQL string

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Export writes every entity of the registry to the SQLite database at
// path, replacing any previous export.
func Export(path string, r *object.Registry) error {
	// Remove any stale catalog so the snapshot is complete.
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	for _, e := range r.Entities() {
		if err := exportEntity(tx, e); err != nil {
			tx.Rollback()
			return fmt.Errorf("export %s: %w", e.Name(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

func exportEntity(tx *sql.Tx, e *object.Entity) error {
	var parent any
	if p := e.Parent(); p != nil {
		parent = p.Name()
	}
	_, err := tx.Exec(
		`INSERT INTO entities (entity_id, name, kind, parent, protected) VALUES (?, ?, ?, ?, ?)`,
		newUUID(), e.Name(), e.Kind(), parent, boolInt(e.Protected()),
	)
	if err != nil {
		return err
	}

	for _, in := range e.Interfaces() {
		_, err := tx.Exec(
			`INSERT INTO entity_interfaces (entity_name, interface_name) VALUES (?, ?)`,
			e.Name(), in.Name(),
		)
		if err != nil {
			return err
		}
	}

	for i, fname := range e.FunctionNames() {
		fn, _ := e.Function(fname)
		_, err := tx.Exec(
			`INSERT INTO functions (function_id, entity_name, name, params, returns, position) VALUES (?, ?, ?, ?, ?, ?)`,
			newUUID(), e.Name(), fname, renderConstraints(fn.Params()), renderConstraints(fn.Returns()), i,
		)
		if err != nil {
			return err
		}
	}

	for _, pname := range e.PropertyNames() {
		c, _ := e.Property(pname)
		_, err := tx.Exec(
			`INSERT INTO properties (entity_name, name, declaration) VALUES (?, ?, ?)`,
			e.Name(), pname, c.String(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// renderConstraints joins a constraint list in declaration form.
func renderConstraints(cs []typespec.Constraint) string {
	if len(cs) == 0 {
		return ""
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
