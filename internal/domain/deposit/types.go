package deposit

// State is the lifecycle position of a deposit transaction. Transitions only
// move forward; AwaitingApproval is the single re-entrant state (a status
// check may report "still pending" any number of times).
type State string

const (
	StateCreated          State = "created"
	StateOtpPending       State = "otp_pending"
	StateAwaitingApproval State = "awaiting_approval"
	StateCompleted        State = "completed"
	StateFailed           State = "failed"
	// StatePending is soft-terminal: the status-check budget ran out while the
	// gateway still reported a non-terminal status. The customer is told to
	// check back later; no further automatic action is taken.
	StatePending State = "pending"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateCreated, StateOtpPending, StateAwaitingApproval,
		StateCompleted, StateFailed, StatePending:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the state is absorbing. Pending counts: the only
// way out of it is starting a brand-new transaction.
func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateFailed, StatePending:
		return true
	default:
		return false
	}
}

type Network string

const (
	NetworkMTN      Network = "mtn"
	NetworkVodafone Network = "vodafone"
	NetworkAT       Network = "at"
)

func (n Network) String() string {
	return string(n)
}

func (n Network) IsValid() bool {
	switch n {
	case NetworkMTN, NetworkVodafone, NetworkAT:
		return true
	default:
		return false
	}
}
