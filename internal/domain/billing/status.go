package billing

// Transaction statuses. pending may move to any other status, challenge may
// still resolve to success or failed, success and failed are terminal.
const (
	StatusPending   = "pending"
	StatusSuccess   = "success"
	StatusChallenge = "challenge"
	StatusFailed    = "failed"
)

// IsTerminal reports whether no further entitlement-affecting transition is
// permitted from s.
func IsTerminal(s string) bool {
	return s == StatusSuccess || s == StatusFailed
}

func canTransition(from, to string) bool {
	if from == to || IsTerminal(from) {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusSuccess || to == StatusChallenge || to == StatusFailed
	case StatusChallenge:
		return to == StatusSuccess || to == StatusFailed
	}
	return false
}
