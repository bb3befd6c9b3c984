package models

// CreationRequest is the only input shape for creating a study group. Callers
// never supply members or a creation date.
type CreationRequest struct {
	UserID  UserID
	Name    string
	Subject Subject
}

// Validate applies the aggregate's checks in the same order as NewStudyGroup.
func (r CreationRequest) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	return validateSubject(r.Subject)
}
