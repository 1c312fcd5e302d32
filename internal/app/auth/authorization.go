package auth

import (
	"github.com/zhangjiang/campuswall/internal/app/models"
)

// Display labels for author identity when the real name or student number
// cannot or must not be shown.
const (
	LabelAnonymous      = "匿名"
	LabelAnonymousUser  = "匿名用户"
	LabelUnknownStudent = "未知学号"
)

// Viewer describes the authenticated caller of a request. A zero Viewer
// means the request carried no session.
type Viewer struct {
	UserID  int64
	IsAdmin bool
}

// IsAuthenticated reports whether the viewer carries a session.
func (v Viewer) IsAuthenticated() bool {
	return v.UserID != 0
}

// DisplayIdentity resolves the name shown for a piece of content based on
// its anonymity level. The result does not depend on who is viewing.
//
//	full    -> fixed anonymous label
//	partial -> real name only
//	none    -> real name plus student number
//
// Unknown levels collapse to the anonymous-user label so that bad data
// never leaks identity.
func DisplayIdentity(level models.AnonymityLevel, author *models.Profile) string {
	switch level {
	case models.AnonymityFull:
		return LabelAnonymous
	case models.AnonymityPartial:
		if author == nil || author.RealName == "" {
			return LabelAnonymousUser
		}
		return author.RealName
	case models.AnonymityNone:
		name := LabelAnonymousUser
		studentID := LabelUnknownStudent
		if author != nil {
			if author.RealName != "" {
				name = author.RealName
			}
			if author.StudentID != "" {
				studentID = author.StudentID
			}
		}
		return name + " (" + studentID + ")"
	default:
		return LabelAnonymousUser
	}
}

// CanMutate reports whether the viewer may update or delete content owned
// by ownerID. Owners and admins may; everyone else may not.
func CanMutate(ownerID int64, viewer Viewer) bool {
	if !viewer.IsAuthenticated() {
		return false
	}
	return viewer.UserID == ownerID || viewer.IsAdmin
}
