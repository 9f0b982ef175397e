package models

// GetAllModels returns all models for GORM AutoMigrate
func GetAllModels() []interface{} {
	return []interface{}{
		// Core models
		&Workspace{},
		&WorkspaceMember{},
		&User{},

		// Lookup models
		&Gender{},
		&Race{},
		&State{},
		&ZipCode{},

		// CRM models
		&Contact{},
		&ContactEmail{},
		&ContactPhone{},
		&ContactAddress{},
		&ContactSocial{},
		&ContactTag{},
		&Business{},
		&BusinessEmail{},
		&BusinessPhone{},
		&BusinessAddress{},
		&BusinessSocial{},
		&BusinessTag{},
		&BusinessEmployee{},
		&Donation{},

		// Import models
		&ImportSession{},
		&ImportRowError{},
	}
}
