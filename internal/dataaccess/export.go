package dataaccess

// Entry points for the typed per-backend repositories, which talk to their
// client directly but must share the adapter's filter semantics and error
// taxonomy so both backends stay behaviorally identical.

// CheckColumns validates column names against the schema registry.
func CheckColumns(table string, columns ...string) error {
	return checkColumns(table, columns...)
}

// WhereClause renders normalized filters into a parameterized WHERE
// fragment starting at placeholder $startArg. The emptiness rule and
// condition ordering are the same ones the adapter applies.
func WhereClause(table string, filters map[string]any, startArg int) (string, []any, int, error) {
	return buildWhere(table, filters, startArg)
}

// FilterAbsent reports whether a filter value counts as absent under the
// shared emptiness rule.
func FilterAbsent(v any) bool {
	return filterEmpty(v)
}

// IsCollection reports whether a filter value is an array-membership match.
func IsCollection(v any) bool {
	return isSlice(v)
}

// TranslatePgxError folds a pgx driver error into the adapter taxonomy.
func TranslatePgxError(err error) error {
	return translatePgxErr(err)
}

// TranslateGormError folds a gorm error into the adapter taxonomy.
func TranslateGormError(err error) error {
	return translateGormErr(err)
}
