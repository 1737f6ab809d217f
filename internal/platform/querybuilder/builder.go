package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// argList collects bind values and hands out $n placeholders in the
// order values are added.
type argList struct {
	args []any
}

func (a *argList) next(value any) string {
	a.args = append(a.args, value)
	return "$" + strconv.Itoa(len(a.args))
}

// Condition renders one WHERE term into the query buffer.
type Condition func(sql *strings.Builder, binds *argList)

func Eq(column string, value any) Condition {
	return func(sql *strings.Builder, binds *argList) {
		sql.WriteString(column)
		sql.WriteString(" = ")
		sql.WriteString(binds.next(value))
	}
}

// In renders a membership test. An empty value set renders a
// never-true term instead of invalid SQL.
func In(column string, values []any) Condition {
	return func(sql *strings.Builder, binds *argList) {
		if len(values) == 0 {
			sql.WriteString("1=0")
			return
		}
		sql.WriteString(column)
		sql.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(binds.next(v))
		}
		sql.WriteByte(')')
	}
}

func IsNull(column string) Condition {
	return func(sql *strings.Builder, _ *argList) {
		sql.WriteString(column)
		sql.WriteString(" IS NULL")
	}
}

// Expr injects a raw SQL fragment; ? markers are rewritten to positional
// placeholders.
func Expr(fragment string, values ...any) Condition {
	return func(sql *strings.Builder, binds *argList) {
		sql.WriteString(expandMarkers(fragment, values, binds))
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select requires columns")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select requires a table")
	}

	binds := &argList{args: make([]any, 0, len(b.where))}
	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)
	writeWhere(&sql, binds, b.where)
	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(b.limit))
	}

	return sql.String(), binds.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends a trailing clause, typically ON CONFLICT, verbatim.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert requires a table")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert requires columns")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert requires values")
	}

	binds := &argList{args: make([]any, 0, len(b.rows)*len(b.columns))}
	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(b.table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values for %d columns", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			sql.WriteString(", ")
		}
		sql.WriteByte('(')
		for colIdx, value := range row {
			if colIdx > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(binds.next(value))
		}
		sql.WriteByte(')')
	}

	if b.suffix != "" {
		sql.WriteByte(' ')
		sql.WriteString(b.suffix)
	}

	return sql.String(), binds.args, nil
}

type setTerm struct {
	column string
	render func(sql *strings.Builder, binds *argList)
}

type UpdateBuilder struct {
	table  string
	sets   []setTerm
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setTerm{
		column: column,
		render: func(sql *strings.Builder, binds *argList) {
			sql.WriteString(binds.next(value))
		},
	})
	return b
}

// SetExpr assigns a raw expression; ? markers in it bind the given
// values positionally.
func (b *UpdateBuilder) SetExpr(column, expr string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, setTerm{
		column: column,
		render: func(sql *strings.Builder, binds *argList) {
			sql.WriteString(expandMarkers(expr, values, binds))
		},
	})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update requires a table")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update requires set clauses")
	}

	binds := &argList{args: make([]any, 0, len(b.sets)+len(b.where))}
	var sql strings.Builder
	sql.WriteString("UPDATE ")
	sql.WriteString(b.table)
	sql.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			sql.WriteString(", ")
		}
		sql.WriteString(s.column)
		sql.WriteString(" = ")
		s.render(&sql, binds)
	}
	writeWhere(&sql, binds, b.where)
	if b.suffix != "" {
		sql.WriteByte(' ')
		sql.WriteString(b.suffix)
	}

	return sql.String(), binds.args, nil
}

func writeWhere(sql *strings.Builder, binds *argList, conditions []Condition) {
	for i, cond := range conditions {
		if i == 0 {
			sql.WriteString(" WHERE ")
		} else {
			sql.WriteString(" AND ")
		}
		cond(sql, binds)
	}
}

// expandMarkers rewrites ? markers in a fragment to positional
// placeholders. Markers beyond the supplied values pass through
// untouched.
func expandMarkers(fragment string, values []any, binds *argList) string {
	if len(values) == 0 {
		return fragment
	}

	var out strings.Builder
	used := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] != '?' {
			out.WriteByte(fragment[i])
			continue
		}
		if used >= len(values) {
			out.WriteByte('?')
			continue
		}
		out.WriteString(binds.next(values[used]))
		used++
	}
	return out.String()
}
