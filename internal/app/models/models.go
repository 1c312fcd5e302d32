package models

// AnonymityLevel is the author-chosen display policy for a post or comment.
type AnonymityLevel string

const (
	AnonymityFull    AnonymityLevel = "full"    // constant anonymous label
	AnonymityPartial AnonymityLevel = "partial" // real name, no student id
	AnonymityNone    AnonymityLevel = "none"    // real name + student id
)

// IsValid reports whether the level is one of the known values.
func (l AnonymityLevel) IsValid() bool {
	switch l {
	case AnonymityFull, AnonymityPartial, AnonymityNone:
		return true
	}
	return false
}

// ReportType identifies what kind of content a report targets.
type ReportType string

const (
	ReportTypePost    ReportType = "post"
	ReportTypeComment ReportType = "comment"
)

// IsValid reports whether the report type is known.
func (t ReportType) IsValid() bool {
	return t == ReportTypePost || t == ReportTypeComment
}

// ReportStatus is the admin review state of a report.
// pending -> resolved | rejected, both terminal.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportResolved || s == ReportRejected
}

// VerificationStatus is the admin review state of a verification request.
// pending -> approved | rejected, both terminal.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s VerificationStatus) IsTerminal() bool {
	return s == VerificationApproved || s == VerificationRejected
}
