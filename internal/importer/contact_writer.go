package importer

import (
	"context"
	"strings"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// createContact writes a new contact and all of its related records.
// First and last name are re-checked at write time independently of the
// declared rules.
func (p *BatchProcessor) createContact(ctx context.Context, s Stores, workspaceID uuid.UUID, row map[string]string) error {
	firstName := strings.TrimSpace(row["firstName"])
	lastName := strings.TrimSpace(row["lastName"])
	if firstName == "" || lastName == "" {
		return newValidationError("firstName", "contact requires a first and last name")
	}

	contact := &models.Contact{
		BaseWorkspaceModel: models.BaseWorkspaceModel{WorkspaceID: workspaceID},
		FirstName:          firstName,
		MiddleName:         row["middleName"],
		LastName:           lastName,
		Pronouns:           row["pronouns"],
		VanID:              row["vanid"],
		Notes:              row["notes"],
	}
	if status := row["status"]; status != "" {
		contact.Status = status
	}

	// Unresolvable gender/race values are dropped, not failed
	if name := row["gender"]; name != "" {
		gender, err := s.Lookups().FindGenderByName(ctx, name)
		if err != nil {
			return err
		}
		if gender != nil {
			contact.GenderID = &gender.ID
		} else {
			log.Debug().Str("gender", name).Msg("gender value not found, dropping")
		}
	}
	if name := row["race"]; name != "" {
		race, err := s.Lookups().FindRaceByName(ctx, name)
		if err != nil {
			return err
		}
		if race != nil {
			contact.RaceID = &race.ID
		} else {
			log.Debug().Str("race", name).Msg("race value not found, dropping")
		}
	}

	for _, email := range SplitList(row["emails"]) {
		contact.Emails = append(contact.Emails, models.ContactEmail{Email: email})
	}
	for _, phone := range SplitList(row["phoneNumbers"]) {
		contact.PhoneNumbers = append(contact.PhoneNumbers, models.ContactPhone{PhoneNumber: phone})
	}
	for _, tag := range SplitList(row["tags"]) {
		contact.Tags = append(contact.Tags, models.ContactTag{Tag: tag})
	}
	for _, account := range parseSocialAccounts(row["socialMediaAccounts"]) {
		contact.SocialAccounts = append(contact.SocialAccounts, models.ContactSocial{
			Platform: account.Platform,
			Handle:   account.Handle,
		})
	}

	addresses, err := p.buildAddresses(ctx, s, row)
	if err != nil {
		return err
	}
	for _, addr := range addresses {
		contact.Addresses = append(contact.Addresses, models.ContactAddress{
			StreetAddress: addr.Street,
			Unit:          addr.Unit,
			City:          addr.City,
			StateID:       addr.StateID,
			ZipCodeID:     addr.ZipCodeID,
		})
	}

	return s.Contacts().Create(ctx, contact)
}

// updateContact replaces scalar fields with the imported values and
// merges related collections: existing emails, phones, addresses,
// social accounts, and tags are preserved, only previously-absent
// values are appended.
func (p *BatchProcessor) updateContact(ctx context.Context, s Stores, workspaceID, contactID uuid.UUID, row map[string]string) error {
	contact, err := s.Contacts().GetByID(ctx, workspaceID, contactID)
	if err != nil {
		return err
	}
	if contact == nil {
		return newProcessingError("", "matched contact no longer exists")
	}

	if v := row["firstName"]; v != "" {
		contact.FirstName = v
	}
	if v := row["middleName"]; v != "" {
		contact.MiddleName = v
	}
	if v := row["lastName"]; v != "" {
		contact.LastName = v
	}
	if v := row["pronouns"]; v != "" {
		contact.Pronouns = v
	}
	if v := row["vanid"]; v != "" {
		contact.VanID = v
	}
	if v := row["status"]; v != "" {
		contact.Status = v
	}
	if v := row["notes"]; v != "" {
		contact.Notes = v
	}
	if name := row["gender"]; name != "" {
		gender, err := s.Lookups().FindGenderByName(ctx, name)
		if err != nil {
			return err
		}
		if gender != nil {
			contact.GenderID = &gender.ID
		}
	}
	if name := row["race"]; name != "" {
		race, err := s.Lookups().FindRaceByName(ctx, name)
		if err != nil {
			return err
		}
		if race != nil {
			contact.RaceID = &race.ID
		}
	}

	if err := s.Contacts().UpdateScalars(ctx, contact); err != nil {
		return err
	}

	var newEmails []models.ContactEmail
	for _, email := range SplitList(row["emails"]) {
		if !containsFold(contactEmailValues(contact.Emails), email) {
			newEmails = append(newEmails, models.ContactEmail{ContactID: contact.ID, Email: email})
		}
	}
	if len(newEmails) > 0 {
		if err := s.Contacts().AddEmails(ctx, newEmails); err != nil {
			return err
		}
	}

	var newPhones []models.ContactPhone
	for _, phone := range SplitList(row["phoneNumbers"]) {
		if !containsExact(contactPhoneValues(contact.PhoneNumbers), phone) {
			newPhones = append(newPhones, models.ContactPhone{ContactID: contact.ID, PhoneNumber: phone})
		}
	}
	if len(newPhones) > 0 {
		if err := s.Contacts().AddPhones(ctx, newPhones); err != nil {
			return err
		}
	}

	var newTags []models.ContactTag
	for _, tag := range SplitList(row["tags"]) {
		if !containsFold(contactTagValues(contact.Tags), tag) {
			newTags = append(newTags, models.ContactTag{ContactID: contact.ID, Tag: tag})
		}
	}
	if len(newTags) > 0 {
		if err := s.Contacts().AddTags(ctx, newTags); err != nil {
			return err
		}
	}

	var newAccounts []models.ContactSocial
	for _, account := range parseSocialAccounts(row["socialMediaAccounts"]) {
		if !contactHasSocial(contact.SocialAccounts, account) {
			newAccounts = append(newAccounts, models.ContactSocial{
				ContactID: contact.ID,
				Platform:  account.Platform,
				Handle:    account.Handle,
			})
		}
	}
	if len(newAccounts) > 0 {
		if err := s.Contacts().AddSocialAccounts(ctx, newAccounts); err != nil {
			return err
		}
	}

	addresses, err := p.buildAddresses(ctx, s, row)
	if err != nil {
		return err
	}
	var newAddresses []models.ContactAddress
	for _, addr := range addresses {
		if !contactHasAddress(contact.Addresses, addr) {
			newAddresses = append(newAddresses, models.ContactAddress{
				ContactID:     contact.ID,
				StreetAddress: addr.Street,
				Unit:          addr.Unit,
				City:          addr.City,
				StateID:       addr.StateID,
				ZipCodeID:     addr.ZipCodeID,
			})
		}
	}
	if len(newAddresses) > 0 {
		if err := s.Contacts().AddAddresses(ctx, newAddresses); err != nil {
			return err
		}
	}

	return nil
}

func contactEmailValues(emails []models.ContactEmail) []string {
	values := make([]string, 0, len(emails))
	for _, e := range emails {
		values = append(values, e.Email)
	}
	return values
}

func contactPhoneValues(phones []models.ContactPhone) []string {
	values := make([]string, 0, len(phones))
	for _, p := range phones {
		values = append(values, p.PhoneNumber)
	}
	return values
}

func contactTagValues(tags []models.ContactTag) []string {
	values := make([]string, 0, len(tags))
	for _, t := range tags {
		values = append(values, t.Tag)
	}
	return values
}

func contactHasSocial(accounts []models.ContactSocial, account socialAccount) bool {
	for _, existing := range accounts {
		if strings.EqualFold(existing.Platform, account.Platform) && strings.EqualFold(existing.Handle, account.Handle) {
			return true
		}
	}
	return false
}

func contactHasAddress(addresses []models.ContactAddress, addr importAddress) bool {
	for _, existing := range addresses {
		if strings.EqualFold(existing.StreetAddress, addr.Street) && strings.EqualFold(existing.City, addr.City) {
			return true
		}
	}
	return false
}

func containsFold(values []string, candidate string) bool {
	for _, v := range values {
		if strings.EqualFold(v, candidate) {
			return true
		}
	}
	return false
}

func containsExact(values []string, candidate string) bool {
	for _, v := range values {
		if v == candidate {
			return true
		}
	}
	return false
}
