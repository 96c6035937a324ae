package approval

type Outcome int

const (
	OutcomeAllowed Outcome = iota
	OutcomeRoleMismatch
	OutcomePending
	OutcomeDeclined
	OutcomeInactive
)

var outcomeNames = map[Outcome]string{
	OutcomeAllowed:      "allowed",
	OutcomeRoleMismatch: "role_mismatch",
	OutcomePending:      "pending",
	OutcomeDeclined:     "declined",
	OutcomeInactive:     "inactive",
}

var outcomeMessages = map[Outcome]string{
	OutcomeAllowed:      "Login successful!",
	OutcomeRoleMismatch: "Only players can log in here. Admins and coaches, please use the admin login.",
	OutcomePending:      "Your account is pending approval. Please wait for admin approval.",
	OutcomeDeclined:     "Your account has been declined. Please contact the admin.",
	OutcomeInactive:     "Your account is inactive. Please contact the admin.",
}

func (o Outcome) String() string {
	if n, ok := outcomeNames[o]; ok {
		return n
	}
	return "unknown"
}

func (o Outcome) Message() string {
	return outcomeMessages[o]
}

// Subject is the part of an account the gate looks at.
type Subject struct {
	IsPlayer bool
	IsActive bool
	Status   Status
}

// CheckLogin decides whether a player whose credentials already matched may start a
// session. The role is checked before the status: a non-player always gets the role
// message, whatever its status.
func CheckLogin(s Subject) Outcome {
	if !s.IsPlayer {
		return OutcomeRoleMismatch
	}
	switch {
	case s.Status == StatusApproved && s.IsActive:
		return OutcomeAllowed
	case s.Status == StatusPending:
		return OutcomePending
	case s.Status == StatusDeclined:
		return OutcomeDeclined
	default:
		return OutcomeInactive
	}
}

// CanUseFeatures gates the approved-only player pages (profile, password change).
func CanUseFeatures(s Subject) bool {
	return s.IsPlayer && s.Status == StatusApproved
}

// DeniedError is returned when the gate refuses a login.
type DeniedError struct {
	Outcome Outcome
}

func (e *DeniedError) Error() string {
	return e.Outcome.Message()
}
