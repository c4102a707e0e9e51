// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb mirrors settled blocks into sqlite for querying. It is a
// derived index: the kv chain store stays the source of truth and the
// mirror can always be rebuilt from it.
package logdb

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pkg/errors"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/block"
	"github.com/axlechain/axle/runtime"
)

// LogDB is the sqlite mirror.
type LogDB struct {
	db *sql.DB
}

// New opens or creates the mirror at the given path.
func New(path string) (*LogDB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=wal&cache=shared")
	if err != nil {
		return nil, errors.Wrap(err, "open logdb")
	}
	// sqlite handles one writer at a time
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init logdb schema")
	}
	return &LogDB{db}, nil
}

// NewMem opens an in-memory mirror.
func NewMem() (*LogDB, error) {
	return New("file::memory:")
}

// Close closes the mirror.
func (l *LogDB) Close() error {
	return l.db.Close()
}

// MaxBlockNumber returns the newest mirrored block number. ok is false when
// the mirror is empty.
func (l *LogDB) MaxBlockNumber() (number uint64, ok bool, err error) {
	row := l.db.QueryRow(`SELECT MAX(number) FROM blocks`)
	var max sql.NullInt64
	if err := row.Scan(&max); err != nil {
		return 0, false, err
	}
	if !max.Valid {
		return 0, false, nil
	}
	return uint64(max.Int64), true, nil
}

// Writer mirrors one or more blocks inside a single sqlite transaction.
type Writer struct {
	tx *sql.Tx
}

// NewWriter starts a writer.
func (l *LogDB) NewWriter() (*Writer, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, err
	}
	return &Writer{tx}, nil
}

// Write mirrors a settled block with the run results of its transactions.
func (w *Writer) Write(blk *block.Block, results []*runtime.RunResult) error {
	header := blk.Header()
	txs := blk.Transactions()
	if _, err := w.tx.Exec(
		`INSERT INTO blocks(number, hash, timestamp, producerId, txCount) VALUES (?,?,?,?,?)`,
		header.Number(), header.Hash().Bytes(), header.Timestamp(), header.ProducerID(), len(txs),
	); err != nil {
		return err
	}
	for i, transaction := range txs {
		result := results[i]
		if _, err := w.tx.Exec(
			`INSERT INTO transactions(blockNumber, txIndex, hash, fromId, toId, nonce, exitCode, cycles, returnData)
			 VALUES (?,?,?,?,?,?,?,?,?)`,
			header.Number(), i, transaction.Hash().Bytes(),
			transaction.FromID(), transaction.ToID(), transaction.Nonce(),
			result.ExitCode, result.Cycles, result.ReturnData,
		); err != nil {
			return err
		}
		for j, entry := range result.Logs {
			if _, err := w.tx.Exec(
				`INSERT INTO logs(blockNumber, txIndex, logIndex, accountId, data) VALUES (?,?,?,?,?)`,
				header.Number(), i, j, entry.AccountID, entry.Data,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// Commit commits all written blocks.
func (w *Writer) Commit() error {
	return w.tx.Commit()
}

// Rollback discards all written blocks.
func (w *Writer) Rollback() error {
	return w.tx.Rollback()
}

// TxRecord is a mirrored transaction with its execution outcome.
type TxRecord struct {
	BlockNumber uint64       `json:"blockNumber"`
	TxIndex     uint32       `json:"txIndex"`
	Hash        axle.Bytes32 `json:"hash"`
	FromID      uint32       `json:"fromId"`
	ToID        uint32       `json:"toId"`
	Nonce       uint32       `json:"nonce"`
	ExitCode    uint8        `json:"exitCode"`
	Cycles      uint64       `json:"cycles"`
	ReturnData  []byte       `json:"returnData,omitempty"`
}

// QueryTransaction returns the mirrored transaction with the given hash.
// A nil record means not found.
func (l *LogDB) QueryTransaction(hash axle.Bytes32) (*TxRecord, error) {
	row := l.db.QueryRow(
		`SELECT blockNumber, txIndex, hash, fromId, toId, nonce, exitCode, cycles, returnData
		 FROM transactions WHERE hash = ? LIMIT 1`, hash.Bytes())
	rec, err := scanTxRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// TxFilter selects mirrored transactions touching an account.
type TxFilter struct {
	AccountID uint32
	Limit     uint64
}

// QueryTransactionsByAccount returns transactions sent or received by the
// account, newest first.
func (l *LogDB) QueryTransactionsByAccount(filter *TxFilter) ([]*TxRecord, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = 100
	}
	rows, err := l.db.Query(
		`SELECT blockNumber, txIndex, hash, fromId, toId, nonce, exitCode, cycles, returnData
		 FROM transactions WHERE fromId = ? OR toId = ?
		 ORDER BY blockNumber DESC, txIndex DESC LIMIT ?`,
		filter.AccountID, filter.AccountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*TxRecord
	for rows.Next() {
		rec, err := scanTxRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanTxRecord(scan func(...any) error) (*TxRecord, error) {
	var (
		rec  TxRecord
		hash []byte
	)
	if err := scan(
		&rec.BlockNumber, &rec.TxIndex, &hash,
		&rec.FromID, &rec.ToID, &rec.Nonce,
		&rec.ExitCode, &rec.Cycles, &rec.ReturnData,
	); err != nil {
		return nil, err
	}
	rec.Hash = axle.BytesToBytes32(hash)
	return &rec, nil
}

// LogRecord is a mirrored log entry.
type LogRecord struct {
	BlockNumber uint64 `json:"blockNumber"`
	TxIndex     uint32 `json:"txIndex"`
	LogIndex    uint32 `json:"logIndex"`
	AccountID   uint32 `json:"accountId"`
	Data        []byte `json:"data"`
}

// LogFilter selects mirrored log entries.
type LogFilter struct {
	FromBlock uint64
	ToBlock   uint64 // inclusive; 0 means newest
	AccountID *uint32
	Limit     uint64
}

// QueryLogs returns log entries in block order.
func (l *LogDB) QueryLogs(filter *LogFilter) ([]*LogRecord, error) {
	toBlock := filter.ToBlock
	if toBlock == 0 {
		toBlock = ^uint64(0) >> 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 100
	}

	query := `SELECT blockNumber, txIndex, logIndex, accountId, data FROM logs
		 WHERE blockNumber BETWEEN ? AND ?`
	args := []any{filter.FromBlock, toBlock}
	if filter.AccountID != nil {
		query += ` AND accountId = ?`
		args = append(args, *filter.AccountID)
	}
	query += ` ORDER BY blockNumber, txIndex, logIndex LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*LogRecord
	for rows.Next() {
		var rec LogRecord
		if err := rows.Scan(&rec.BlockNumber, &rec.TxIndex, &rec.LogIndex, &rec.AccountID, &rec.Data); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
