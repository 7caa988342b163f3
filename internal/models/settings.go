package models

// Settings holds the identity fields persisted between runs
type Settings struct {
	Username     string `json:"username"`      // display name, seeds the wizard subject
	UserEmail    string `json:"user_email"`    // address supplied by the identity provider
	ManagerName  string `json:"manager_name"`  // recipient of shared statements
	ManagerEmail string `json:"manager_email"` // recipient address

	SnoozedQuestions []string `json:"snoozed_questions,omitempty"`
}
