package native

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sparvlang/sparv/internal/config"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// dbOpen opens an SQLite database file and hands back a handle object
// whose methods close over the connection.
func dbOpen(args []evaluator.Object) (evaluator.Object, error) {
	path := args[0].(*evaluator.String)
	conn, err := sql.Open("sqlite", path.Value)
	if err != nil {
		return nil, fmt.Errorf("Cannot open database '%s': %v", path.Value, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("Cannot open database '%s': %v", path.Value, err)
	}
	return newDBHandle(conn), nil
}

func newDBHandle(conn *sql.DB) *evaluator.HostObject {
	sqlParam := []typesystem.Type{typesystem.String}

	exec := func(args []evaluator.Object) (evaluator.Object, error) {
		stmt := args[0].(*evaluator.String)
		result, err := conn.Exec(stmt.Value)
		if err != nil {
			return nil, fmt.Errorf("SQL error: %v", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			affected = 0
		}
		return &evaluator.Integer{Value: affected}, nil
	}

	queryOne := func(args []evaluator.Object) (evaluator.Object, error) {
		stmt := args[0].(*evaluator.String)
		row := conn.QueryRow(stmt.Value)
		var value sql.NullString
		if err := row.Scan(&value); err != nil {
			if err == sql.ErrNoRows {
				return evaluator.NIL, nil
			}
			return nil, fmt.Errorf("SQL error: %v", err)
		}
		if !value.Valid {
			return evaluator.NIL, nil
		}
		return &evaluator.String{Value: value.String}, nil
	}

	closeFn := func(args []evaluator.Object) (evaluator.Object, error) {
		if err := conn.Close(); err != nil {
			return nil, fmt.Errorf("SQL error: %v", err)
		}
		return evaluator.NIL, nil
	}

	return &evaluator.HostObject{
		Name: "DBHandle",
		Methods: map[string]evaluator.NativeInvoker{
			"exec":     NewCallable("exec", sqlParam, typesystem.Int, exec),
			"queryOne": NewCallable("queryOne", sqlParam, typesystem.String, queryOne),
			"close":    NewCallable("close", nil, typesystem.Null, closeFn),
		},
	}
}

func newDBClass() *evaluator.HostObject {
	return &evaluator.HostObject{
		Name: config.DBClassName,
		Methods: map[string]evaluator.NativeInvoker{
			"open": NewCallable("open",
				[]typesystem.Type{typesystem.String},
				typesystem.Host{Name: "DBHandle"}, dbOpen),
		},
	}
}
