package repository

import (
	"fmt"
	"sort"
	"strings"
)

// setClause renders a partial-update value map into "SET a = $1, b = $2"
// with deterministic column order. Callers validate columns first.
func setClause(values map[string]any) (string, []any) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		sets[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args[i] = values[k]
	}
	return strings.Join(sets, ", "), args
}

func joinOr(conds []string) string {
	return strings.Join(conds, " OR ")
}

// columnNames extracts the keys of a value map for registry validation.
func columnNames(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	return keys
}
