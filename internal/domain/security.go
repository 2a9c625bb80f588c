package domain

// SecurityAssessment is the security gate's verdict on a statement.
type SecurityAssessment struct {
	Allowed bool
	Keyword string
	Message string
}
