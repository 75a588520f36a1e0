package orm

import (
	"fmt"
	"strconv"
	"strings"
)

// Statements are rendered in canonical form: unquoted identifiers and "?"
// placeholders. The store's dialect rebinds placeholders before execution.
//
// Ids embedded by SelectByIDStatement and DeleteStatement are int64 values,
// never caller-supplied text.

// SelectAllStatement returns the query for every row plus its column names.
func (t *Table[T]) SelectAllStatement() (string, []string) {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name + ";", t.Columns()
}

// SelectByIDStatement returns the query for the row with the given id.
func (t *Table[T]) SelectByIDStatement(id int64) (string, []string) {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name +
		" WHERE id = " + strconv.FormatInt(id, 10) + ";", t.Columns()
}

// SelectByFieldStatement returns a partial-match query on field. The caller
// binds one parameter, already wrapped in "%" wildcards.
func (t *Table[T]) SelectByFieldStatement(field string) (string, []string, error) {
	col, err := t.column(field)
	if err != nil {
		return "", nil, err
	}
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name +
		" WHERE " + col + " LIKE ?;", t.Columns(), nil
}

// SelectByExactFieldStatement returns an equality query on field selecting
// every column, or only the projected fields when any are given.
func (t *Table[T]) SelectByExactFieldStatement(field string, projection ...string) (string, error) {
	col, err := t.column(field)
	if err != nil {
		return "", err
	}
	sel := "*"
	if len(projection) > 0 {
		cols := make([]string, len(projection))
		for i, p := range projection {
			if cols[i], err = t.column(p); err != nil {
				return "", err
			}
		}
		sel = strings.Join(cols, ", ")
	}
	return "SELECT " + sel + " FROM " + t.name + " WHERE " + col + " = ?;", nil
}

// DeleteStatement returns the statement deleting the row with the given id.
func (t *Table[T]) DeleteStatement(id int64) string {
	return "DELETE FROM " + t.name + " WHERE id = " + strconv.FormatInt(id, 10) + ";"
}

// InsertStatement returns the INSERT for row and its parameters in column
// order. Foreign keys bind the referenced row's id and fail with
// ErrUnsavedReference when it has none.
func (t *Table[T]) InsertStatement(row *T) (string, []any, error) {
	args, err := t.values(row)
	if err != nil {
		return "", nil, err
	}
	if len(t.fields) == 0 {
		return "INSERT INTO " + t.name + " DEFAULT VALUES;", nil, nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(t.fields)), ", ")
	return "INSERT INTO " + t.name + " (" + strings.Join(t.columns[1:], ", ") +
		") VALUES (" + marks + ");", args, nil
}

// UpdateStatement returns the whole-row UPDATE for row: every field value in
// column order followed by the id. A row without an id fails with ErrUnsaved.
func (t *Table[T]) UpdateStatement(row *T) (string, []any, error) {
	id := *t.id(row)
	if id == 0 {
		return "", nil, fmt.Errorf("%s: %w", t.name, ErrUnsaved)
	}
	args, err := t.values(row)
	if err != nil {
		return "", nil, err
	}
	set := make([]string, 0, len(t.fields))
	for _, c := range t.columns[1:] {
		set = append(set, c+" = ?")
	}
	if len(set) == 0 {
		set = append(set, "id = id")
	}
	return "UPDATE " + t.name + " SET " + strings.Join(set, ", ") + " WHERE id = ?;", append(args, id), nil
}

func (t *Table[T]) values(row *T) ([]any, error) {
	args := make([]any, 0, len(t.fields)+1)
	for _, f := range t.fields {
		v, err := f.value(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.name, err)
		}
		args = append(args, v)
	}
	return args, nil
}

// column resolves a field name, a foreign key column name, or "id" to a
// storage column.
func (t *Table[T]) column(field string) (string, error) {
	if field == "id" {
		return "id", nil
	}
	i, ok := t.byName[field]
	if !ok {
		return "", fmt.Errorf("%s.%s: %w", t.name, field, ErrUnknownField)
	}
	return t.fields[i].column(), nil
}
