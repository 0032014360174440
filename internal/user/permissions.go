package user

// Role values stored on AccountProfile. A superuser is treated as admin no
// matter what the stored role says.
const (
	RolePlayer = "player"
	RoleCoach  = "coach"
	RoleAdmin  = "admin"
)

// EffectiveRole resolves the single effective role for a user, in priority
// order: superuser flag, then the profile's stored role, then player as the
// safe default when no profile exists. Authorization decisions must call this
// on a freshly loaded user rather than a cached one, since role and approval
// can change between requests.
func (u *User) EffectiveRole() string {
	if u.IsSuperuser {
		return RoleAdmin
	}
	if u.Profile != nil {
		return u.Profile.Role
	}
	return RolePlayer
}

func (u *User) IsAdmin() bool {
	return u.EffectiveRole() == RoleAdmin
}

// IsCoach reports whether the stored role is coach, regardless of approval.
func (u *User) IsCoach() bool {
	return u.Profile != nil && u.Profile.Role == RoleCoach
}

// IsApprovedCoach reports whether the user is a coach with the admin-granted
// approval flag. Only approved coaches (and admins) may discover or contact
// players.
func (u *User) IsApprovedCoach() bool {
	return u.IsCoach() && u.Profile.IsCoachApproved
}

func (u *User) IsPlayer() bool {
	return u.EffectiveRole() == RolePlayer
}

// HomeAssociationID returns the coach's home association id, or 0 when unset.
func (u *User) HomeAssociationID() uint {
	if u.Profile == nil || u.Profile.AssociationID == nil {
		return 0
	}
	return *u.Profile.AssociationID
}
