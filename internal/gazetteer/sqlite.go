package gazetteer

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS thai_address (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	province    TEXT NOT NULL,
	district    TEXT NOT NULL DEFAULT '',
	subdistrict TEXT NOT NULL DEFAULT '',
	zipcode     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_thai_address_province ON thai_address(province);
CREATE INDEX IF NOT EXISTS idx_thai_address_zipcode ON thai_address(zipcode);
`

// SQLiteStore gazetteer lưu trong bảng thai_address của SQLite
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite mở hoặc tạo database SQLite tại path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("tạo thư mục db: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("mở db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(sqliteSchema)
	return err
}

// Close đóng database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Records đọc toàn bộ bảng theo thứ tự chèn
func (s *SQLiteStore) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT province, district, subdistrict, zipcode FROM thai_address ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query thai_address: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Province, &r.District, &r.Subdistrict, &r.PostalCode); err != nil {
			return nil, fmt.Errorf("scan thai_address: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Replace thay toàn bộ nội dung bảng bằng records trong một transaction
func (s *SQLiteStore) Replace(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM thai_address`); err != nil {
		return fmt.Errorf("xoá dữ liệu cũ: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO thai_address (province, district, subdistrict, zipcode) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Province, r.District, r.Subdistrict, r.PostalCode); err != nil {
			return fmt.Errorf("insert %s/%s/%s: %w", r.Province, r.District, r.Subdistrict, err)
		}
	}
	return tx.Commit()
}
