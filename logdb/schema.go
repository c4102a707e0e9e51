// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const schema = `
CREATE TABLE IF NOT EXISTS blocks (
	number INTEGER PRIMARY KEY,
	hash BLOB NOT NULL UNIQUE,
	timestamp INTEGER NOT NULL,
	producerId INTEGER NOT NULL,
	txCount INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	seq INTEGER PRIMARY KEY,
	blockNumber INTEGER NOT NULL,
	txIndex INTEGER NOT NULL,
	hash BLOB NOT NULL,
	fromId INTEGER NOT NULL,
	toId INTEGER NOT NULL,
	nonce INTEGER NOT NULL,
	exitCode INTEGER NOT NULL,
	cycles INTEGER NOT NULL,
	returnData BLOB
);

CREATE INDEX IF NOT EXISTS transactions_i0 ON transactions(hash);
CREATE INDEX IF NOT EXISTS transactions_i1 ON transactions(fromId);
CREATE INDEX IF NOT EXISTS transactions_i2 ON transactions(toId);

CREATE TABLE IF NOT EXISTS logs (
	seq INTEGER PRIMARY KEY,
	blockNumber INTEGER NOT NULL,
	txIndex INTEGER NOT NULL,
	logIndex INTEGER NOT NULL,
	accountId INTEGER NOT NULL,
	data BLOB
);

CREATE INDEX IF NOT EXISTS logs_i0 ON logs(accountId, blockNumber);
`
