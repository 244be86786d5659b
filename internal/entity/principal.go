package entity

import (
	"auction-management-api/internal/common"

	"github.com/google/uuid"
)

// Principal is the already-authenticated caller attached to every request
// by the authentication collaborator. The core trusts it and performs no
// credential verification of its own.
type Principal struct {
	Id   uuid.UUID
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == common.RoleAdmin
}
