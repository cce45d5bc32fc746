package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Role is the coarse permission class of a caller.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
	RoleClient    Role = "CLIENT"
)

// ParseRole normalises s into a Role. Unknown values are kept (upper-cased) so
// that callers can still report them; IsKnown tells them apart.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// IsKnown reports whether r is one of the declared roles.
func (r Role) IsKnown() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleClient:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// ID is an identifier that may arrive as a JSON string or number.
type ID string

// UnmarshalJSON accepts "42", 42 and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON renders an empty ID as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// User is the caller identity supplied with every request. It is not persisted
// by this service.
type User struct {
	ID       ID   `json:"id"`
	Role     Role `json:"role"`
	ClientID ID   `json:"client_id"`
}

// HasIdentity reports whether the user carries a role at all.
func (u *User) HasIdentity() bool {
	return u != nil && strings.TrimSpace(string(u.Role)) != ""
}
