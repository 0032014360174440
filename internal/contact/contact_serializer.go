package contact

import (
	"time"

	"github.com/DhavalSuthar-24/transferportal/internal/user"
)

// ContactRequestView is the serialized form of a contact request. The
// player's email and phone are pointers so that "hidden" renders as null, and
// a missing phone is also null rather than an empty string. They are set if
// and only if the request is approved and the viewer is the original
// requester or an admin.
type ContactRequestView struct {
	ID                      uint       `json:"id"`
	PlayerID                uint       `json:"player_id"`
	RequestingTeamID        *uint      `json:"requesting_team_id"`
	RequestingAssociationID *uint      `json:"requesting_association_id"`
	RequestedByID           uint       `json:"requested_by_id"`
	Status                  string     `json:"status"`
	Message                 string     `json:"message"`
	CreatedAt               time.Time  `json:"created_at"`
	RespondedAt             *time.Time `json:"responded_at"`
	PlayerEmail             *string    `json:"player_email"`
	PlayerPhone             *string    `json:"player_phone"`
}

// NewContactRequestView projects a request for the given viewer.
func NewContactRequestView(cr *ContactRequest, viewer *user.User) ContactRequestView {
	view := ContactRequestView{
		ID:                      cr.ID,
		PlayerID:                cr.PlayerID,
		RequestingTeamID:        cr.RequestingTeamID,
		RequestingAssociationID: cr.RequestingAssociationID,
		RequestedByID:           cr.RequestedByID,
		Status:                  cr.Status,
		Message:                 cr.Message,
		CreatedAt:               cr.CreatedAt,
		RespondedAt:             cr.RespondedAt,
	}

	if cr.Status != StatusApproved || viewer == nil {
		return view
	}
	if viewer.ID != cr.RequestedByID && !viewer.IsAdmin() {
		return view
	}

	if cr.Player != nil && cr.Player.Email != "" {
		email := cr.Player.Email
		view.PlayerEmail = &email
	}
	if cr.Player != nil && cr.Player.Profile != nil && cr.Player.Profile.PhoneNumber != "" {
		phone := cr.Player.Profile.PhoneNumber
		view.PlayerPhone = &phone
	}
	return view
}

// NewContactRequestViews projects a list for the given viewer.
func NewContactRequestViews(requests []ContactRequest, viewer *user.User) []ContactRequestView {
	views := make([]ContactRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, NewContactRequestView(&requests[i], viewer))
	}
	return views
}

// ContactRequestListView wraps a request list with the pending counter shown
// on the dashboard.
type ContactRequestListView struct {
	Requests     []ContactRequestView `json:"requests"`
	PendingCount int                  `json:"pending_count"`
}

// NewContactRequestListView projects a list for the given viewer and counts
// the requests still awaiting a response.
func NewContactRequestListView(requests []ContactRequest, viewer *user.User) ContactRequestListView {
	pending := 0
	for i := range requests {
		if requests[i].IsPending() {
			pending++
		}
	}
	return ContactRequestListView{
		Requests:     NewContactRequestViews(requests, viewer),
		PendingCount: pending,
	}
}
