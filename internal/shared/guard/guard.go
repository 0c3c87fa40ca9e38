package guard

// Session is the resolved identity of the current caller, or nil when no
// one is signed in.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// Decision is the admission result consumed by admin views.
type Decision struct {
	IsAdmin    bool `json:"isAdmin"`
	IsChecking bool `json:"isChecking"`
}

// Policy is the single admission policy for admin surfaces. The owner email
// comes from configuration, never a literal baked into logic.
//
// A profile role may be attached to the session, but it is deliberately not
// consulted here: admission is governed by the owner allow-list alone.
// Endpoint-level role checks (admin/editor for uploads) are a separate
// concern handled against the profiles table.
type Policy struct {
	OwnerEmail string
}

func NewPolicy(ownerEmail string) Policy {
	return Policy{OwnerEmail: ownerEmail}
}

// Evaluate derives the admission decision.
//
// checking is true only while session retrieval is still in flight and the
// feature is enabled; consumers must render a neutral state and must not
// redirect during that window.
//
// A disabled feature (or an unconstructed identity provider) always yields
// IsAdmin=false, never "allow all".
func (p Policy) Evaluate(session *Session, featureEnabled, sessionLoading bool) Decision {
	if !featureEnabled {
		return Decision{}
	}

	if sessionLoading {
		return Decision{IsChecking: true}
	}

	if session == nil || p.OwnerEmail == "" {
		return Decision{}
	}

	return Decision{IsAdmin: session.Email == p.OwnerEmail}
}
