package constants

const (
	// Identity settings
	SettingUsername     = "username"
	SettingUserEmail    = "user_email"
	SettingManagerName  = "manager_name"
	SettingManagerEmail = "manager_email"
	SettingSnoozed      = "snoozed_questions"
)
