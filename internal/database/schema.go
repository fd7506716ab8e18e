package database

import (
	"embed"
	"fmt"
	"strings"
)

// The binary carries its schema, so Initialize never depends on the working directory.
//
//go:embed schema/*.sql
var schemaFS embed.FS

// schemaFiles lists the scripts a reset runs, in order.
var schemaFiles = []string{
	"schema/drop.sql",
	"schema/create.sql",
}

// ResetStatements returns the statements that drop and recreate the
// customers, products and orders tables, one statement per element.
//
// Running them destroys every stored row.
func ResetStatements() ([]string, error) {
	var statements []string
	for _, name := range schemaFiles {
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		statements = append(statements, SplitStatements(string(raw))...)
	}
	return statements, nil
}

// SplitStatements splits a script on ";" after removing "--" comment lines.
// The scripts it serves never embed ";" inside literals.
func SplitStatements(script string) []string {
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var out []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
