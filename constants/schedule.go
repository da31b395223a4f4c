package constants

// Profile is the detected document family; it controls which extraction
// branch the line processor runs.
type Profile string

const (
	ProfileCalendar Profile = "calendar" // tabular dd/mm grid
	ProfilePlan     Profile = "plan"     // narrative day-by-day plan
	ProfileGeneric  Profile = "generic"
)

// Scope classifies a week as pre-production or production.
type Scope string

const (
	ScopePre Scope = "pre"
	ScopePro Scope = "pro"
)

// Crew schedule types (store these exact strings).
const (
	CrewTipoGeneral       = "general"
	CrewTipoPersonalizado = "personalizado"
)

// Advisory warning codes emitted by the parser. Never fatal.
const (
	WarnNoText     = "no-text"
	WarnNoDays     = "no-days"
	WarnNoSchedule = "no-schedule"
	// Orphan schedule warnings are formatted as "orphan-schedules: N".
	WarnOrphanSchedulesPrefix = "orphan-schedules"
)

// JobStatus is the canonical status for stored import jobs.
type JobStatus string

const (
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusParsed  JobStatus = "PARSED" // parse completed, result persisted
	JobStatusFailed  JobStatus = "FAILED" // terminal failure
)
