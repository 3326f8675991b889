package dataaccess

import (
	"fmt"
	"sort"
	"strings"
)

// SQL assembly for the pgx backend. Identifiers are validated against the
// schema registry before being spliced in; every value travels as a
// sequentially numbered placeholder.

// buildWhere renders the normalized filters into a WHERE fragment. Scalar
// values become equality conditions, collections become "= ANY($n)".
// Returns the fragment (empty when no filters survive), the argument list
// and the next placeholder index.
func buildWhere(table string, filters map[string]any, startArg int) (string, []any, int, error) {
	conds, args, next, err := buildConds(table, filters, startArg)
	if err != nil || conds == "" {
		return "", nil, next, err
	}
	return " WHERE " + conds, args, next, nil
}

// buildConds renders the bare AND-joined condition list buildWhere and the
// guarded update share.
func buildConds(table string, filters map[string]any, startArg int) (string, []any, int, error) {
	keys, active := normalizeFilters(filters)
	if len(keys) == 0 {
		return "", nil, startArg, nil
	}
	if err := checkColumns(table, keys...); err != nil {
		return "", nil, 0, err
	}

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	n := startArg
	for _, k := range keys {
		v := active[k]
		if isSlice(v) {
			conds = append(conds, fmt.Sprintf("%s = ANY($%d)", k, n))
		} else {
			conds = append(conds, fmt.Sprintf("%s = $%d", k, n))
		}
		args = append(args, v)
		n++
	}
	return strings.Join(conds, " AND "), args, n, nil
}

// buildSelect renders a full SELECT honoring the semantic order
// filters → order → limit/offset.
func buildSelect(table string, opts QueryOptions) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}

	projection := "*"
	if len(opts.Columns) > 0 {
		if err := checkColumns(table, opts.Columns...); err != nil {
			return "", nil, err
		}
		projection = strings.Join(opts.Columns, ", ")
	}

	where, args, next, err := buildWhere(table, opts.Filters, 1)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s%s", projection, table, where)

	if opts.OrderBy != "" {
		if err := checkColumns(table, opts.OrderBy); err != nil {
			return "", nil, err
		}
		dir := "ASC"
		if opts.OrderDesc {
			dir = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", opts.OrderBy, dir)
	}
	if opts.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT $%d", next)
		args = append(args, opts.Limit)
		next++
	}
	if opts.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET $%d", next)
		args = append(args, opts.Offset)
	}
	return b.String(), args, nil
}

// buildCount renders the COUNT(*) twin of buildSelect, sharing its WHERE.
func buildCount(table string, filters map[string]any) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}
	where, args, _, err := buildWhere(table, filters, 1)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, where), args, nil
}

// buildInsert renders INSERT ... RETURNING * with columns in sorted order.
func buildInsert(table string, values Row) (string, []any, error) {
	keys, active := normalizeInsert(values)
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("insert into %s with no values: %w", table, ErrMalformedQuery)
	}
	if err := checkColumns(table, keys...); err != nil {
		return "", nil, err
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = active[k]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(keys, ", "), strings.Join(placeholders, ", "))
	return sql, args, nil
}

// buildUpdate renders UPDATE ... WHERE idColumn = $n RETURNING *.
func buildUpdate(table string, id any, values Row, idColumn string) (string, []any, error) {
	keys, active := normalizeInsert(values)
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("update %s with no values: %w", table, ErrMalformedQuery)
	}
	if err := checkColumns(table, append(keys, idColumn)...); err != nil {
		return "", nil, err
	}

	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, k := range keys {
		sets[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args = append(args, active[k])
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *",
		table, strings.Join(sets, ", "), idColumn, len(keys)+1)
	return sql, args, nil
}

// buildGuardedUpdate renders UPDATE ... WHERE idColumn = $n AND <guards>
// RETURNING *. The guards travel in the statement itself so the row only
// changes when it is still in a permitted state at write time.
func buildGuardedUpdate(table string, id any, values Row, idColumn string, guards map[string]any) (string, []any, error) {
	keys, active := normalizeInsert(values)
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("guarded update %s with no values: %w", table, ErrMalformedQuery)
	}
	if err := checkColumns(table, append(keys, idColumn)...); err != nil {
		return "", nil, err
	}

	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1+len(guards))
	for i, k := range keys {
		sets[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args = append(args, active[k])
	}
	args = append(args, id)
	idArg := len(keys) + 1

	conds, guardArgs, _, err := buildConds(table, guards, idArg+1)
	if err != nil {
		return "", nil, err
	}
	where := fmt.Sprintf("%s = $%d", idColumn, idArg)
	if conds != "" {
		where += " AND " + conds
		args = append(args, guardArgs...)
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *",
		table, strings.Join(sets, ", "), where)
	return sql, args, nil
}

func buildDelete(table, idColumn string) (string, error) {
	if err := checkColumns(table, idColumn); err != nil {
		return "", err
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idColumn), nil
}

// buildSearch renders a case-insensitive partial match ORed across fields.
func buildSearch(table string, fields []string, limit int) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("search on %s with no fields: %w", table, ErrMalformedQuery)
	}
	if err := checkColumns(table, fields...); err != nil {
		return "", err
	}
	conds := make([]string, len(fields))
	for i, f := range fields {
		conds[i] = fmt.Sprintf("%s ILIKE $1", f)
	}
	sql := fmt.Sprintf("SELECT * FROM %s WHERE %s", table, strings.Join(conds, " OR "))
	if limit > 0 {
		sql = fmt.Sprintf("%s LIMIT %d", sql, limit)
	}
	return sql, nil
}

// normalizeInsert keeps explicit values (including nil, which writes NULL on
// purpose for insert/update, unlike filters) in sorted column order.
func normalizeInsert(values Row) ([]string, Row) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, values
}
