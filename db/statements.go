package db

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethpandaops/frenscan/dbtypes"
)

// BuildInsertStatements flattens a change set into one INSERT statement per
// row change. Rows that already exist are left untouched.
func BuildInsertStatements(changes *dbtypes.DatabaseChanges, engine dbtypes.DBEngineType, schema string) ([]string, error) {
	statements := make([]string, 0, len(changes.TableChanges))

	for _, change := range changes.TableChanges {
		if change.Operation != dbtypes.OperationCreate {
			return nil, fmt.Errorf("unsupported operation %v for table %v", change.Operation, change.Table)
		}

		pkColumns := make([]string, 0, len(change.CompositePK))
		for column := range change.CompositePK {
			pkColumns = append(pkColumns, column)
		}
		sort.Strings(pkColumns)

		columns := make([]string, 0, len(pkColumns)+len(change.Fields))
		values := make([]string, 0, len(pkColumns)+len(change.Fields))
		for _, column := range pkColumns {
			columns = append(columns, column)
			values = append(values, quoteLiteral(change.CompositePK[column]))
		}
		for _, field := range change.Fields {
			columns = append(columns, field.Name)
			values = append(values, fieldLiteral(change.Table, field))
		}

		var sql strings.Builder
		fmt.Fprint(&sql,
			EngineQuery(engine, map[dbtypes.DBEngineType]string{
				dbtypes.DBEnginePgsql:  "INSERT INTO ",
				dbtypes.DBEngineSqlite: "INSERT OR IGNORE INTO ",
			}),
			tableName(schema, change.Table),
			" (", strings.Join(columns, ", "), ")",
			" VALUES (", strings.Join(values, ", "), ")",
		)
		fmt.Fprint(&sql, EngineQuery(engine, map[dbtypes.DBEngineType]string{
			dbtypes.DBEnginePgsql:  " ON CONFLICT DO NOTHING",
			dbtypes.DBEngineSqlite: "",
		}))
		sql.WriteString(";")

		statements = append(statements, sql.String())
	}

	return statements, nil
}

// fieldLiteral renders a column value. Call traces are already stored as
// quoted literals.
func fieldLiteral(table string, field *dbtypes.Field) string {
	value := field.NewValue
	if table == TableCallTraces && field.Name == "trace" && len(value) >= 2 && strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") {
		value = value[1 : len(value)-1]
	}
	return quoteLiteral(value)
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func tableName(schema string, table string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}
