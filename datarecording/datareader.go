package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// QueryParams selects and orders the rows of a query.
type QueryParams struct {
	// Where is the condition without the WHERE keyword, for example
	// "Param > ? AND Sweep = ?". Empty matches every row.
	Where string

	// Args fill the placeholders of Where.
	Args []any

	// Limit is the maximum number of rows returned. Zero means no limit.
	Limit int

	// Offset is the number of rows skipped. It only applies with a Limit.
	Offset int

	// OrderBy is the ordering without the ORDER BY keywords.
	OrderBy string
}

// DataReader reads rows back into the structs they were recorded from.
type DataReader interface {
	// MapTable tells the reader which struct the rows of a table decode
	// into. A table must be mapped before it is queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables in mapping order.
	ListTables() []string

	// Query returns pointers to structs of the mapped type, plus the number
	// of rows that match Where regardless of Limit.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the database.
	Close() error
}

type sqliteReader struct {
	*sql.DB

	types  map[string]reflect.Type
	tables []string
}

// NewReader opens the SQLite database in dbFilename for reading.
func NewReader(dbFilename string) DataReader {
	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		panic(err)
	}

	return NewReaderWithDB(db)
}

// NewReaderWithDB creates a DataReader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		DB:    db,
		types: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	if _, found := r.types[tableName]; !found {
		r.tables = append(r.tables, tableName)
	}

	r.types[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	return append([]string(nil), r.tables...)
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.types[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("no mapping found for table: %s", tableName)
	}

	where := ""
	if params.Where != "" {
		where = " WHERE " + params.Where
	}

	var total int

	err := r.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+where, params.Args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	var query strings.Builder
	query.WriteString("SELECT * FROM " + tableName + where)

	if params.OrderBy != "" {
		query.WriteString(" ORDER BY " + params.OrderBy)
	}

	if params.Limit > 0 {
		fmt.Fprintf(&query, " LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}

	rows, err := r.QueryContext(ctx, query.String(), params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results, err := decodeRows(rows, structType)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// decodeRows scans every row into a new struct of type t. Columns are matched
// to fields by name; columns without a field are dropped.
func decodeRows(rows *sql.Rows, t reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []any

	for rows.Next() {
		entry := reflect.New(t)
		targets := make([]any, len(columns))

		for i, column := range columns {
			field := entry.Elem().FieldByName(column)
			if field.IsValid() {
				targets[i] = field.Addr().Interface()
			} else {
				targets[i] = new(any)
			}
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.DB.Close()
}
