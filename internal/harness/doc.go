// Package harness runs scripted innings and checks what happened.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: scenario_a
//	description: "Mixed scoring over the first five balls"
//	innings_id: a            # optional; innings are numbered a-1, a-2, ...
//	commands:
//	  - START
//	  - RUN 4
//	  - WICKET
//	assertions:
//	  - type: final_state
//	    expect: { runs: 4, wickets: 1, overs: "0.2" }
//	  - type: trace_contains
//	    command: RUN 4
//	    state: { run_rate: "24.00" }
//	  - type: journal_state
//	    table: innings
//	    where: { id: a-1 }
//	    expect: { end_reason: "" }
//
// Commands use the controller's textual form (START, STOP, RUN n, WICKET
// and the aliases accepted by engine.ParseCommand). A command that fails to
// parse is recorded in the trace as rejected and does not stop the run.
//
// # Assertion Types
//
//   - final_state: subset match against the final snapshot
//   - trace_contains: a trace entry with the command (and optional state subset)
//   - trace_order: commands first appear in the given order
//   - trace_count: a command appears exactly N times
//   - journal_state: query the innings or balls table of the journal
//
// # Deterministic Testing
//
// Every scenario runs against its own controller with a
// testutil.DeterministicClock, sequential innings IDs and an in-memory
// journal, so the same scenario always produces the same trace. Traces are
// compared with golden files via RunWithGolden.
package harness
