package domain

// Intent is the closed set of button and menu actions. Raw transport payloads
// are decoded into an Intent exactly once, at the transport boundary; all
// downstream logic switches on the tag, never on raw text.
type Intent string

const (
	IntentAddSchedule  Intent = "add_schedule"
	IntentViewSchedule Intent = "view_schedule"
	IntentHelp         Intent = "help"
	IntentAddAdmin     Intent = "add_admin"
	IntentAddMember    Intent = "add_member"
	IntentTargetAdmin  Intent = "target_admin"
	IntentTargetMember Intent = "target_member"
	IntentConfirm      Intent = "confirm"
	IntentCancel       Intent = "cancel"
)

// ParseIntent decodes a button payload. The second result is false for
// payloads outside the closed set.
func ParseIntent(payload string) (Intent, bool) {
	switch Intent(payload) {
	case IntentAddSchedule, IntentViewSchedule, IntentHelp,
		IntentAddAdmin, IntentAddMember,
		IntentTargetAdmin, IntentTargetMember,
		IntentConfirm, IntentCancel:
		return Intent(payload), true
	}
	return "", false
}
