package loader

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/asaidimu/go-datagrid/core/record"
)

// FromSQL runs a query against any database/sql connection and scans the
// rows into records, one per result row. Column names become field names;
// []byte values are widened to string so substring rules apply.
func FromSQL(ctx context.Context, db *sql.DB, logger *zap.Logger, query string, args ...any) ([]record.Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying dataset: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []record.Record
	for rows.Next() {
		row := make(record.Record, len(columns))
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		for i, col := range columns {
			switch val := values[i].(type) {
			case []byte:
				row[col] = string(val)
			default:
				row[col] = val
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dataset rows: %w", err)
	}

	logger.Debug("Loaded dataset from SQL", zap.Int("rows", len(results)), zap.Strings("columns", columns))
	return results, nil
}
