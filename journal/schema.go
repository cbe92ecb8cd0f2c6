package journal

const Schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	time DATETIME NOT NULL,
	kind TEXT NOT NULL,
	signal INTEGER NOT NULL,
	direction TEXT NOT NULL,
	reason TEXT NOT NULL,
	confidence REAL NOT NULL,
	weight REAL NOT NULL,
	grade TEXT NOT NULL,
	stop REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_time ON decisions(time);
CREATE INDEX IF NOT EXISTS idx_decisions_symbol ON decisions(symbol);
`
