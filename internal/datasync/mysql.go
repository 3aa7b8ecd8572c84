package datasync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/burgerhouse/storefront/internal/models"
)

const mysqlErrDuplicateEntry = 1062

// MySQL stores records in a single table:
//
//	CREATE TABLE records (
//	    id         VARCHAR(64) PRIMARY KEY,
//	    type       VARCHAR(32) NOT NULL,
//	    body       JSON        NOT NULL,
//	    version    BIGINT      NOT NULL,
//	    created_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
// MySQL has no push channel, so change detection polls the row count and
// version sum on a ticker; any difference triggers a full reload and push.
type MySQL struct {
	db       *sql.DB
	log      *slog.Logger
	interval time.Duration
	handler  Handler
	cancel   context.CancelFunc

	lastCount   int64
	lastVersion int64
}

// NewMySQL creates a MySQL data service polling at the given interval.
func NewMySQL(db *sql.DB, interval time.Duration, log *slog.Logger) *MySQL {
	return &MySQL{db: db, interval: interval, log: log}
}

func (m *MySQL) Init(ctx context.Context, h Handler) error {
	if err := m.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping mysql: %w", err)
	}
	m.handler = h

	count, version, err := m.fingerprint(ctx)
	if err != nil {
		return err
	}
	m.lastCount, m.lastVersion = count, version

	records, err := m.load(ctx)
	if err != nil {
		return err
	}
	if h != nil {
		h.OnDataChanged(records)
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go m.poll(pollCtx)

	return nil
}

func (m *MySQL) poll(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, version, err := m.fingerprint(ctx)
			if err != nil {
				m.log.Error("failed to poll records", "error", err)
				continue
			}
			if count == m.lastCount && version == m.lastVersion {
				continue
			}
			m.lastCount, m.lastVersion = count, version

			records, err := m.load(ctx)
			if err != nil {
				m.log.Error("failed to reload records", "error", err)
				continue
			}
			if m.handler != nil {
				m.handler.OnDataChanged(records)
			}
		}
	}
}

func (m *MySQL) fingerprint(ctx context.Context) (count, version int64, err error) {
	err = m.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(version), 0) FROM records`,
	).Scan(&count, &version)
	if err != nil {
		return 0, 0, fmt.Errorf("fingerprint records: %w", err)
	}
	return count, version, nil
}

func (m *MySQL) Create(ctx context.Context, rec models.Record) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO records (id, type, body, version) VALUES (?, ?, ?, 1)`,
		rec.ID, rec.Type, []byte(rec.Body),
	)
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (m *MySQL) Update(ctx context.Context, rec models.Record) error {
	result, err := m.db.ExecContext(ctx,
		`UPDATE records SET type = ?, body = ?, version = version + 1 WHERE id = ?`,
		rec.Type, []byte(rec.Body), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if rows == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (m *MySQL) load(ctx context.Context) ([]models.Record, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT body FROM records ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := models.ParseRecord(body)
		if err != nil {
			m.log.Warn("skipping malformed record", "error", err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Close stops the poller and releases the pool.
func (m *MySQL) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return m.db.Close()
}
