package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for transfer run identifiers.
	FieldRunID = "run_id"
	// FieldStep is the standardized structured logging key for pipeline steps.
	FieldStep = "step"
	// FieldTrackIndex is the standardized structured logging key for the 1-based source track position.
	FieldTrackIndex = "track_index"
	// FieldEventType classifies a log line for filtering (e.g. "search_failed").
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType tags decision logs (e.g. "match_selection").
	FieldDecisionType = "decision_type"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)
