package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/internal/user"
)

func approvedRequestWithContact() *ContactRequest {
	return &ContactRequest{
		Model:         gorm.Model{ID: 1},
		PlayerID:      1,
		RequestedByID: 9,
		RegionID:      1,
		Status:        StatusApproved,
		Player: &user.User{
			Model: gorm.Model{ID: 1},
			Email: "player@example.com",
			Profile: &user.AccountProfile{
				UserID:      1,
				PhoneNumber: "+16045550123",
			},
		},
	}
}

func TestViewHidesContactWhilePending(t *testing.T) {
	cr := approvedRequestWithContact()
	cr.Status = StatusPending
	requester := &user.User{Model: gorm.Model{ID: 9}}

	view := NewContactRequestView(cr, requester)
	assert.Nil(t, view.PlayerEmail)
	assert.Nil(t, view.PlayerPhone)
}

func TestViewExposesContactToRequesterWhenApproved(t *testing.T) {
	cr := approvedRequestWithContact()
	requester := &user.User{Model: gorm.Model{ID: 9}}

	view := NewContactRequestView(cr, requester)
	require.NotNil(t, view.PlayerEmail)
	assert.Equal(t, "player@example.com", *view.PlayerEmail)
	require.NotNil(t, view.PlayerPhone)
	assert.Equal(t, "+16045550123", *view.PlayerPhone)
}

func TestViewExposesContactToAdmin(t *testing.T) {
	cr := approvedRequestWithContact()
	admin := &user.User{Model: gorm.Model{ID: 42}, IsSuperuser: true}

	view := NewContactRequestView(cr, admin)
	assert.NotNil(t, view.PlayerEmail)
	assert.NotNil(t, view.PlayerPhone)
}

func TestViewHidesContactFromOtherViewers(t *testing.T) {
	cr := approvedRequestWithContact()

	// Approved, but the viewer neither requested it nor is admin.
	other := &user.User{Model: gorm.Model{ID: 50}, Profile: &user.AccountProfile{Role: user.RoleCoach, IsCoachApproved: true}}
	view := NewContactRequestView(cr, other)
	assert.Nil(t, view.PlayerEmail)
	assert.Nil(t, view.PlayerPhone)

	view = NewContactRequestView(cr, nil)
	assert.Nil(t, view.PlayerEmail)
	assert.Nil(t, view.PlayerPhone)
}

func TestViewMissingPhoneStaysNull(t *testing.T) {
	cr := approvedRequestWithContact()
	cr.Player.Profile.PhoneNumber = ""
	requester := &user.User{Model: gorm.Model{ID: 9}}

	// A player without a phone renders null, same as hidden, never "".
	view := NewContactRequestView(cr, requester)
	require.NotNil(t, view.PlayerEmail)
	assert.Nil(t, view.PlayerPhone)
}

func TestViewDeclinedHidesContact(t *testing.T) {
	cr := approvedRequestWithContact()
	cr.Status = StatusDeclined
	requester := &user.User{Model: gorm.Model{ID: 9}}

	view := NewContactRequestView(cr, requester)
	assert.Nil(t, view.PlayerEmail)
	assert.Nil(t, view.PlayerPhone)
}
