package models

// User is the public identity of an account. The credential lives only in the
// account directory and is never part of this type.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserPatch is a shallow partial profile update: nil fields keep their
// current value.
type UserPatch struct {
	Name  *string
	Email *string
}

func (p UserPatch) Apply(base User) User {
	if p.Name != nil {
		base.Name = *p.Name
	}
	if p.Email != nil {
		base.Email = *p.Email
	}
	return base
}

// Session pairs a token with the authenticated user's snapshot. A session
// exists if and only if a token is held.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
