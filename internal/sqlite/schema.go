package sqlite

// nowMillis evaluates to the current time in unix milliseconds. SQLite keeps
// 'now' fixed for the duration of one statement step.
const nowMillis = `CAST(ROUND((julianday('now') - 2440587.5) * 86400000) AS INTEGER)`

// Schema DDL. Every statement is idempotent so Initialize can run any number
// of times without touching existing rows.
const (
	createTestCases = `CREATE TABLE IF NOT EXISTS test_cases (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL CHECK (length(trim(title)) > 0),
    description TEXT,
    priority TEXT NOT NULL DEFAULT 'Medium' CHECK (priority IN ('High', 'Medium', 'Low')),
    status TEXT NOT NULL DEFAULT 'Not Tested' CHECK (status IN ('Not Tested', 'Passed', 'Failed', 'Blocked')),
    created_at INTEGER NOT NULL DEFAULT (` + nowMillis + `),
    updated_at INTEGER NOT NULL DEFAULT (` + nowMillis + `),
    notes TEXT
);`

	// The trigger only watches user-editable columns, so its own write to
	// updated_at does not fire it again. MAX keeps updated_at strictly
	// increasing even when two updates land in the same millisecond.
	createTouchTrigger = `CREATE TRIGGER IF NOT EXISTS test_cases_touch_updated_at
AFTER UPDATE OF title, description, priority, status, notes ON test_cases
FOR EACH ROW
BEGIN
    UPDATE test_cases
    SET updated_at = MAX(` + nowMillis + `, OLD.updated_at + 1)
    WHERE id = OLD.id;
END;`

	createImmutableTrigger = `CREATE TRIGGER IF NOT EXISTS test_cases_immutable_columns
BEFORE UPDATE OF id, created_at ON test_cases
FOR EACH ROW
WHEN NEW.id IS NOT OLD.id OR NEW.created_at IS NOT OLD.created_at
BEGIN
    SELECT RAISE(ABORT, 'id and created_at are immutable');
END;`

	idxTestCasesStatusPriority = `CREATE INDEX IF NOT EXISTS idx_test_cases_status_priority ON test_cases(status, priority);`
)

// schemaDDL lists the statements run by Initialize, in dependency order.
var schemaDDL = []string{
	createTestCases,
	createTouchTrigger,
	createImmutableTrigger,
	idxTestCasesStatusPriority,
}

// schemaProbe reports whether the test_cases table exists.
const schemaProbe = `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'test_cases'`
