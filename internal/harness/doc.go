// Package harness provides conformance testing for the reconciliation engine.
//
// The harness loads calendar scenarios, runs the full normalize-reconcile
// pipeline on them, and validates the resulting execution summaries and
// conflicts as executable contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	today: "2024-06-15"
//	sessions:
//	  - {id: s1, date: "2024-06-10", sport: running, duration_minutes: 60}
//	activities:
//	  - {id: a1, date: "2024-06-10", sport: running, duration_minutes: 75, planned_session_id: s1}
//	candidates:
//	  - {id: c1, date: "2024-06-10", time: "07:30", sport: running}
//	expect:
//	  days:
//	    - date: "2024-06-10"
//	      summaries:
//	        - state: COMPLETED_AS_PLANNED
//	          planned_id: s1
//	          activity_id: a1
//	          duration_delta_seconds: 900
//	  conflicts:
//	    - date: "2024-06-10"
//	      existing: s1
//	      candidate: c1
//	      reason: time_overlap
//
// Session, activity, and candidate records go through the normalizer exactly
// as production payloads do, so scenarios may use any accepted backend alias.
//
// # Deterministic Testing
//
// Scenarios run with a fixed reference date and fixed run tokens, so repeated
// runs produce identical canonical snapshots. Golden files under
// testdata/golden capture the full snapshot per scenario and catch any
// unintended change in output shape or ordering.
package harness
