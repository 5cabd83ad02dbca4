// ABOUTME: Mutation dialog as an explicit finite-state machine
// ABOUTME: closed -> editing -> submitting -> (closed | error)

package syncer

// DialogState is the lifecycle of one mutation dialog.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogEditing
	DialogSubmitting
	DialogError
)

// Dialog tracks one mutation dialog. Failures attach to the dialog's
// local error field only; they never contaminate the list-level error.
type Dialog struct {
	state DialogState
	err   string
}

// State returns the current dialog state.
func (d *Dialog) State() DialogState { return d.state }

// Open reports whether the dialog is visible in any form.
func (d *Dialog) Open() bool { return d.state != DialogClosed }

// Err returns the dialog-local error message.
func (d *Dialog) Err() string { return d.err }

// Begin opens the dialog for editing with a clean error field.
func (d *Dialog) Begin() {
	d.state = DialogEditing
	d.err = ""
}

// Submit marks the dialog's write as in flight.
func (d *Dialog) Submit() {
	d.state = DialogSubmitting
	d.err = ""
}

// Close discards the dialog (cancel or successful submit).
func (d *Dialog) Close() {
	d.state = DialogClosed
	d.err = ""
}

// Fail keeps the dialog open showing the failure.
func (d *Dialog) Fail(msg string) {
	d.state = DialogError
	d.err = msg
}
