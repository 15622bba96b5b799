package harness

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/roach88/crease/internal/engine"
	"github.com/roach88/crease/internal/store"
)

// validIdentifier matches table and column names that may be interpolated
// into journal queries.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// journalTables lists the tables journal_state may query.
var journalTables = map[string]bool{"innings": true, "balls": true}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent // nil when the trace adds nothing
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, ev := range e.Trace {
			status := "applied"
			switch {
			case ev.Error != "":
				status = "rejected " + ev.Error
			case !ev.Applied:
				status = "ignored"
			}
			fmt.Fprintf(&buf, "  [%d] seq=%d %s (%s) %d/%d %s\n",
				i+1, ev.Seq, ev.Command, status, ev.State.Runs, ev.State.Wickets, ev.State.Overs)
		}
	}
	return buf.String()
}

// normalizeCommand maps aliases to the form recorded in traces, so "6" and
// "SIX" both match "RUN 6". Unparseable text is compared as written.
func normalizeCommand(s string) string {
	if cmd, err := engine.ParseCommand(s); err == nil {
		return cmd.String()
	}
	return strings.TrimSpace(s)
}

func matchesEntry(ev TraceEvent, command string, applied *bool) bool {
	if ev.Command != command {
		return false
	}
	return applied == nil || *applied == ev.Applied
}

func assertFinalState(result *Result, a Assertion) error {
	actual := result.Final.Fields()
	for _, key := range sortedKeys(a.Expect) {
		got, ok := actual[key]
		if !ok {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   "no such snapshot field",
			}
		}
		if !stateValuesEqual(a.Expect[key], got) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("%s = %v", key, a.Expect[key]),
				Actual:   fmt.Sprintf("%s = %v", key, got),
				Trace:    result.Trace,
			}
		}
	}
	return nil
}

func assertTraceContains(trace []TraceEvent, a Assertion) error {
	want := normalizeCommand(a.Command)
	for _, ev := range trace {
		if matchesEntry(ev, want, a.Applied) && matchState(ev.State.Fields(), a.State) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("command %s with state %v", want, a.State),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the commands appear as a subsequence of the
// trace. Intervening commands are allowed and a command may repeat.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	want := make([]string, len(a.Commands))
	for i, c := range a.Commands {
		want[i] = normalizeCommand(c)
	}

	present := make(map[string]bool)
	for _, ev := range trace {
		present[ev.Command] = true
	}
	for _, c := range want {
		if !present[c] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all commands present: %v", want),
				Actual:   fmt.Sprintf("missing command: %s", c),
				Trace:    trace,
			}
		}
	}

	pos := 0
	for i, c := range want {
		for pos < len(trace) && trace[pos].Command != c {
			pos++
		}
		if pos == len(trace) {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("commands in order: %v", want),
				Actual:   fmt.Sprintf("no %s after %v", c, want[:i]),
				Trace:    trace,
			}
		}
		pos++
	}
	return nil
}

func assertTraceCount(trace []TraceEvent, a Assertion) error {
	want := normalizeCommand(a.Command)
	count := 0
	for _, ev := range trace {
		if matchesEntry(ev, want, a.Applied) {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, want),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertJournalState selects exactly one journal row and checks a subset of
// its columns. Values are always bound as parameters; identifiers are
// checked against validIdentifier.
func assertJournalState(ctx context.Context, st *store.Store, a Assertion) error {
	if !journalTables[a.Table] {
		return fmt.Errorf("journal_state: unknown table %q (want innings or balls)", a.Table)
	}

	whereSQL, whereArgs, err := buildWhereClause(a.Where)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("SELECT * FROM %s", a.Table)
	if whereSQL != "" {
		query += " WHERE " + whereSQL
	}

	rows, err := st.Query(ctx, query, whereArgs...)
	if err != nil {
		return &AssertionError{
			Type:     AssertJournalState,
			Expected: fmt.Sprintf("query table %s", a.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("get columns: %w", err)
	}

	if !rows.Next() {
		return &AssertionError{
			Type:     AssertJournalState,
			Expected: fmt.Sprintf("row in %s where %s", a.Table, formatWhereClause(a.Where)),
			Actual:   "row not found",
		}
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return fmt.Errorf("scan row: %w", err)
	}

	if rows.Next() {
		return &AssertionError{
			Type:     AssertJournalState,
			Expected: fmt.Sprintf("exactly one row in %s where %s", a.Table, formatWhereClause(a.Where)),
			Actual:   "multiple rows matched (assertion is ambiguous)",
		}
	}

	row := make(map[string]any, len(columns))
	for i, col := range columns {
		row[col] = values[i]
	}

	for _, key := range sortedKeys(a.Expect) {
		got, ok := row[key]
		if !ok {
			return &AssertionError{
				Type:     AssertJournalState,
				Expected: fmt.Sprintf("column %q to exist", key),
				Actual:   fmt.Sprintf("columns: %v", columns),
			}
		}
		if !stateValuesEqual(a.Expect[key], got) {
			return &AssertionError{
				Type:     AssertJournalState,
				Expected: fmt.Sprintf("%s = %v (type %T)", key, a.Expect[key], a.Expect[key]),
				Actual:   fmt.Sprintf("%s = %v (type %T)", key, got, got),
			}
		}
	}
	return nil
}

// buildWhereClause returns a parameterized WHERE fragment. Keys are sorted
// so the generated SQL is stable.
func buildWhereClause(where map[string]any) (string, []any, error) {
	if len(where) == 0 {
		return "", nil, nil
	}

	keys := sortedKeys(where)
	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		if !validIdentifier.MatchString(key) {
			return "", nil, fmt.Errorf("invalid column name %q in where clause: must match pattern %s", key, validIdentifier.String())
		}
		clauses = append(clauses, key+" = ?")
		args = append(args, where[key])
	}
	return strings.Join(clauses, " AND "), args, nil
}

func formatWhereClause(where map[string]any) string {
	if len(where) == 0 {
		return "(no conditions)"
	}
	parts := make([]string, 0, len(where))
	for _, k := range sortedKeys(where) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// stateValuesEqual compares a YAML value with a snapshot or SQLite value.
// SQLite returns integers as int64, text as string (or []byte) and NULL as
// nil; YAML gives int, string and bool.
func stateValuesEqual(expected, actual any) bool {
	if b, ok := actual.([]byte); ok {
		actual = string(b)
	}
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	switch exp := expected.(type) {
	case int:
		return toInt64(actual) == int64(exp) && isInteger(actual)
	case int64:
		return toInt64(actual) == exp && isInteger(actual)
	case bool:
		switch act := actual.(type) {
		case bool:
			return exp == act
		case int64:
			return exp == (act != 0)
		}
		return false
	case string:
		act, ok := actual.(string)
		return ok && exp == act
	}
	return reflect.DeepEqual(expected, actual)
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int64:
		return true
	}
	return false
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

// matchState reports whether actual contains every key in expected with an
// equal value. Extra keys in actual are ignored.
func matchState(actual, expected map[string]any) bool {
	for key, want := range expected {
		got, ok := actual[key]
		if !ok || !stateValuesEqual(want, got) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AssertionContext provides journal access for journal_state assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions and returns one message per
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertFinalState:
			err = assertFinalState(result, a)
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertJournalState:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: journal_state requires a journal", i)
			} else {
				err = assertJournalState(actx.Ctx, actx.Store, a)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
