package importer

import (
	"time"
)

// Options is the recognized configuration surface of one import run.
// Env-first defaults are applied by the CLI; tests construct this directly.
type Options struct {
	// DeleteExistingData removes previously generated families (full
	// dependency closure) before recreating them.
	DeleteExistingData bool

	// ProcessOnlyGivingData skips every pass except giving generation for
	// people that already exist in storage.
	ProcessOnlyGivingData bool

	EnableGiving        bool
	FabricateAttendance bool

	// EnableTimingDiagnostics logs per-phase elapsed times.
	EnableTimingDiagnostics bool

	// RandomizerSeed seeds the run's single RNG. Zero means
	// non-deterministic (time-seeded).
	RandomizerSeed int64

	// NewLoginPassword enables the deferred login creation pass when set.
	NewLoginPassword string

	// Now fixes the reference time for age computation and generator end
	// dates. Zero means time.Now(). Fixing it makes runs reproducible.
	Now time.Time

	// AttendanceCodeIssueTime fixes the issue timestamp stamped on
	// generated attendance codes. Zero means the record's check-in time.
	AttendanceCodeIssueTime time.Time

	// Default email templates applied to registration templates that do
	// not declare their own.
	ConfirmationEmailTemplate    string
	ReminderEmailTemplate        string
	PaymentReminderEmailTemplate string
	SuccessText                  string

	// CreatorAliasId attributes generated records to an identity.
	CreatorAliasId int
}
