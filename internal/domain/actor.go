package domain

// Actor is the authenticated caller, as supplied by the session layer.
type Actor struct {
	Identity string
	Reviewer bool
}

// NewActor builds an actor with a normalized identity.
func NewActor(identity string, reviewer bool) Actor {
	return Actor{Identity: NormalizeIdentity(identity), Reviewer: reviewer}
}

func (a Actor) IsAuthenticated() bool { return a.Identity != "" }
