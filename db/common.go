package db

import (
	"github.com/ethpandaops/frenscan/dbtypes"
)

// EngineQuery picks the engine specific query variant, falling back to the
// generic one.
func EngineQuery(engine dbtypes.DBEngineType, queryMap map[dbtypes.DBEngineType]string) string {
	if queryMap[engine] != "" {
		return queryMap[engine]
	}
	return queryMap[dbtypes.DBEngineAny]
}
