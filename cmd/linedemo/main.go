// Command linedemo is an interactive showcase of the line editor: SQL
// keyword completion, multi-line input terminated by a trailing semicolon,
// persistent cross-session history, and a trivial highlighter that dims
// comment lines. Adapted from the teacher's cmd/demo/main.go, replacing
// its single prompt.New call with the expanded Editor/Option surface and
// swapping the in-memory-only history for WithHistoryPath.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jcorbin/lineedit"
)

func init() {
	sort.Strings(sqlKeywords)
}

func completer(text []rune, wordStart, wordEnd int) []string {
	word := strings.ToUpper(string(text[wordStart:wordEnd]))
	i := sort.Search(len(sqlKeywords), func(i int) bool {
		return sqlKeywords[i] >= word
	})
	if i >= len(sqlKeywords) {
		return nil
	}
	word += "\xff"
	j := sort.Search(len(sqlKeywords), func(i int) bool {
		return sqlKeywords[i] >= word
	})
	return sqlKeywords[i:j]
}

func inputFinished(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasSuffix(text, ";")
}

// highlighter dims any line beginning with "--", a minimal stand-in for a
// real SQL tokenizer.
func highlighter(text string) []lineedit.ColorSpan {
	var spans []lineedit.ColorSpan
	start := 0
	for i, r := range text {
		if r == '\n' {
			markComment(text[start:i], start, &spans)
			start = i + 1
		}
	}
	markComment(text[start:], start, &spans)
	return spans
}

func markComment(line string, offset int, spans *[]lineedit.ColorSpan) {
	if strings.HasPrefix(strings.TrimSpace(line), "--") {
		*spans = append(*spans, lineedit.ColorSpan{Start: offset, End: offset + len(line), Value: "\x1b[2m"})
	}
}

func main() {
	fmt.Printf(`# command line demo
# - multi-line input terminated by a trailing semicolon
# - standard navigation and editing commands
# - history browsing and search, persisted across runs
# - kill ring
# - tab completion of SQL keywords
`)

	histDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		histDir = filepath.Join(home, ".linedemo")
	}

	e := lineedit.New(
		lineedit.WithCompleter(completer),
		lineedit.WithHighlighter(highlighter),
		lineedit.WithInputFinished(inputFinished),
		lineedit.WithHistoryPath(histDir, "demo"),
	)
	defer e.Close()

	for {
		_, err := e.ReadLine("demo> ", "")
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Fatal(err)
		}
	}
}

// NB: copied from github.com/cockroachdb/cockroach/pkg/sql/lexbase/keywords.go:KeywordNames.
var sqlKeywords = []string{
	"ABORT", "ACCESS", "ACTION", "ADD", "ADMIN", "AFTER", "AGGREGATE", "ALL",
	"ALTER", "ALWAYS", "ANALYSE", "ANALYZE", "AND", "ANNOTATE_TYPE", "ANY",
	"ARRAY", "AS", "ASC", "ASYMMETRIC", "AT", "ATTRIBUTE", "AUTHORIZATION",
	"AUTOMATIC", "AVAILABILITY", "BACKUP", "BACKUPS", "BEFORE", "BEGIN",
	"BETWEEN", "BIGINT", "BINARY", "BIT", "BOOLEAN", "BOTH", "BY", "CACHE",
	"CANCEL", "CASCADE", "CASE", "CAST", "CHAR", "CHARACTER", "CHECK",
	"CLOSE", "CLUSTER", "COALESCE", "COLLATE", "COLUMN", "COLUMNS", "COMMENT",
	"COMMIT", "COMMITTED", "CONCURRENTLY", "CONFLICT", "CONNECTION",
	"CONSTRAINT", "CONSTRAINTS", "CONVERT", "COPY", "CREATE", "CROSS", "CSV",
	"CUBE", "CURRENT", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
	"CURRENT_USER", "CURSOR", "CYCLE", "DATA", "DATABASE", "DATABASES",
	"DAY", "DEALLOCATE", "DEC", "DECIMAL", "DECLARE", "DEFAULT", "DEFAULTS",
	"DEFERRABLE", "DEFERRED", "DELETE", "DELIMITER", "DESC", "DISCARD",
	"DISTINCT", "DO", "DOMAIN", "DOUBLE", "DROP", "ELSE", "ENCODING", "END",
	"ENUM", "ESCAPE", "EXCEPT", "EXCLUDE", "EXCLUDING", "EXECUTE", "EXISTS",
	"EXPLAIN", "EXPORT", "EXTENSION", "EXTRACT", "FALSE", "FAMILY", "FETCH",
	"FILTER", "FIRST", "FLOAT", "FOLLOWING", "FOR", "FOREIGN", "FROM", "FULL",
	"FUNCTION", "FUNCTIONS", "GENERATED", "GLOBAL", "GRANT", "GRANTS",
	"GREATEST", "GROUP", "GROUPING", "GROUPS", "HASH", "HAVING", "HOUR",
	"IDENTITY", "IF", "IGNORE_FOREIGN_KEYS", "ILIKE", "IMMEDIATE", "IMPORT",
	"IN", "INCLUDE", "INCLUDING", "INCREMENT", "INCREMENTAL", "INDEX",
	"INDEXES", "INHERITS", "INITIALLY", "INNER", "INSERT", "INT", "INTEGER",
	"INTERSECT", "INTERVAL", "INTO", "INVERTED", "IS", "ISOLATION", "JOB",
	"JOBS", "JOIN", "JSON", "KEY", "KEYS", "LANGUAGE", "LAST", "LATERAL",
	"LEADING", "LEAST", "LEFT", "LESS", "LEVEL", "LIKE", "LIMIT", "LIST",
	"LOCAL", "LOCALTIME", "LOCALTIMESTAMP", "LOGIN", "MATCH", "MATERIALIZED",
	"MAXVALUE", "MERGE", "METHOD", "MINUTE", "MINVALUE", "MONTH", "NAMES",
	"NAN", "NATURAL", "NEVER", "NEXT", "NO", "NONE", "NORMAL", "NOT",
	"NOTHING", "NOTNULL", "NOWAIT", "NULL", "NULLIF", "NULLS", "NUMERIC",
	"OF", "OFF", "OFFSET", "OIDS", "ON", "ONLY", "OPERATOR", "OPTION",
	"OPTIONS", "OR", "ORDER", "ORDINALITY", "OTHERS", "OUT", "OUTER", "OVER",
	"OVERLAPS", "OVERLAY", "OWNED", "OWNER", "PARENT", "PARTIAL", "PARTITION",
	"PARTITIONS", "PASSWORD", "PAUSE", "PAUSED", "PHYSICAL", "PLACING",
	"PLAN", "PLANS", "POSITION", "PRECEDING", "PRECISION", "PREPARE",
	"PRESERVE", "PRIMARY", "PRIORITY", "PRIVILEGES", "PUBLIC", "PUBLICATION",
	"QUERIES", "QUERY", "RANGE", "RANGES", "READ", "REAL", "REASON",
	"REASSIGN", "RECURSIVE", "REF", "REFERENCES", "REFRESH", "REGION",
	"REGIONAL", "REGIONS", "REINDEX", "RELEASE", "RENAME", "REPEATABLE",
	"REPLACE", "REPLICATION", "RESET", "RESTORE", "RESTRICT", "RESTRICTED",
	"RESUME", "RETRY", "RETURNING", "REVOKE", "RIGHT", "ROLE", "ROLES",
	"ROLLBACK", "ROLLUP", "ROUTINES", "ROW", "ROWS", "RULE", "RUNNING",
	"SAVEPOINT", "SCHEDULE", "SCHEDULES", "SCHEMA", "SCHEMAS", "SCRUB",
	"SEARCH", "SECOND", "SELECT", "SEQUENCE", "SEQUENCES", "SERIALIZABLE",
	"SERVER", "SESSION", "SESSIONS", "SESSION_USER", "SET", "SETS",
	"SETTING", "SETTINGS", "SHARE", "SHOW", "SIMILAR", "SIMPLE", "SKIP",
	"SMALLINT", "SNAPSHOT", "SOME", "SPLIT", "SQL", "START", "STATEMENTS",
	"STATISTICS", "STATUS", "STDIN", "STORAGE", "STORE", "STORED", "STORING",
	"STREAM", "STRICT", "STRING", "SUBSCRIPTION", "SUBSTRING", "SYMMETRIC",
	"SYNTAX", "SYSTEM", "TABLE", "TABLES", "TABLESPACE", "TEMP", "TEMPLATE",
	"TEMPORARY", "TENANT", "TEXT", "THEN", "TIES", "TIME", "TIMESTAMP",
	"TIMESTAMPTZ", "TIMETZ", "TO", "TRACE", "TRAILING", "TRANSACTION",
	"TRANSACTIONS", "TREAT", "TRIGGER", "TRIM", "TRUE", "TRUNCATE",
	"TRUSTED", "TYPE", "TYPES", "UNBOUNDED", "UNCOMMITTED", "UNION",
	"UNIQUE", "UNKNOWN", "UNLOGGED", "UNTIL", "UPDATE", "UPSERT", "USE",
	"USER", "USERS", "USING", "VALID", "VALIDATE", "VALUE", "VALUES",
	"VARBIT", "VARCHAR", "VARIADIC", "VARYING", "VIEW", "VIRTUAL",
	"VISIBLE", "WHEN", "WHERE", "WINDOW", "WITH", "WITHIN", "WITHOUT",
	"WORK", "WRITE", "YEAR", "ZONE",
}
