package common

// Item statuses. Exactly one item may be Bidding at any instant.
const (
	Listed  = "listed"
	Bidding = "bidding"
	Sold    = "sold"
)

// Principal roles resolved by the authentication collaborator.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
