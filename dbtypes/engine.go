package dbtypes

import (
	"fmt"
	"strings"
)

type DBEngineType int

const (
	DBEngineAny    DBEngineType = 0
	DBEngineSqlite DBEngineType = 1
	DBEnginePgsql  DBEngineType = 2
)

// ParseDBEngine maps the configured engine name to its type.
func ParseDBEngine(name string) (DBEngineType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pgsql", "postgres", "postgresql":
		return DBEnginePgsql, nil
	case "sqlite", "sqlite3":
		return DBEngineSqlite, nil
	}
	return DBEngineAny, fmt.Errorf("unknown database engine %q", name)
}

func (e DBEngineType) String() string {
	switch e {
	case DBEnginePgsql:
		return "pgsql"
	case DBEngineSqlite:
		return "sqlite"
	}
	return "any"
}
