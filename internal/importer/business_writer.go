package importer

import (
	"context"
	"strings"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
)

// createBusiness writes a new business and its related records.
// Employees are never written from raw import data; they come through
// the dedicated business API only.
func (p *BatchProcessor) createBusiness(ctx context.Context, s Stores, workspaceID uuid.UUID, row map[string]string) error {
	name := strings.TrimSpace(row["businessName"])
	if name == "" {
		return newValidationError("businessName", "business requires a name")
	}

	business := &models.Business{
		BaseWorkspaceModel: models.BaseWorkspaceModel{WorkspaceID: workspaceID},
		Name:               name,
		Website:            row["website"],
		Notes:              row["notes"],
	}
	if status := row["status"]; status != "" {
		business.Status = status
	}

	for _, email := range SplitList(row["emails"]) {
		business.Emails = append(business.Emails, models.BusinessEmail{Email: email})
	}
	for _, phone := range SplitList(row["phoneNumbers"]) {
		business.PhoneNumbers = append(business.PhoneNumbers, models.BusinessPhone{PhoneNumber: phone})
	}
	for _, tag := range SplitList(row["tags"]) {
		business.Tags = append(business.Tags, models.BusinessTag{Tag: tag})
	}
	for _, account := range parseSocialAccounts(row["socialMediaAccounts"]) {
		business.SocialAccounts = append(business.SocialAccounts, models.BusinessSocial{
			Platform: account.Platform,
			Handle:   account.Handle,
		})
	}

	addresses, err := p.buildAddresses(ctx, s, row)
	if err != nil {
		return err
	}
	for _, addr := range addresses {
		business.Addresses = append(business.Addresses, models.BusinessAddress{
			StreetAddress: addr.Street,
			Unit:          addr.Unit,
			City:          addr.City,
			StateID:       addr.StateID,
			ZipCodeID:     addr.ZipCodeID,
		})
	}

	return s.Businesses().Create(ctx, business)
}

// updateBusiness replaces scalar fields and merges related collections
func (p *BatchProcessor) updateBusiness(ctx context.Context, s Stores, workspaceID, businessID uuid.UUID, row map[string]string) error {
	business, err := s.Businesses().GetByID(ctx, workspaceID, businessID)
	if err != nil {
		return err
	}
	if business == nil {
		return newProcessingError("", "matched business no longer exists")
	}

	if v := row["businessName"]; v != "" {
		business.Name = v
	}
	if v := row["website"]; v != "" {
		business.Website = v
	}
	if v := row["status"]; v != "" {
		business.Status = v
	}
	if v := row["notes"]; v != "" {
		business.Notes = v
	}

	if err := s.Businesses().UpdateScalars(ctx, business); err != nil {
		return err
	}

	var newEmails []models.BusinessEmail
	existingEmails := businessEmailValues(business.Emails)
	for _, email := range SplitList(row["emails"]) {
		if !containsFold(existingEmails, email) {
			newEmails = append(newEmails, models.BusinessEmail{BusinessID: business.ID, Email: email})
		}
	}
	if len(newEmails) > 0 {
		if err := s.Businesses().AddEmails(ctx, newEmails); err != nil {
			return err
		}
	}

	var newPhones []models.BusinessPhone
	existingPhones := businessPhoneValues(business.PhoneNumbers)
	for _, phone := range SplitList(row["phoneNumbers"]) {
		if !containsExact(existingPhones, phone) {
			newPhones = append(newPhones, models.BusinessPhone{BusinessID: business.ID, PhoneNumber: phone})
		}
	}
	if len(newPhones) > 0 {
		if err := s.Businesses().AddPhones(ctx, newPhones); err != nil {
			return err
		}
	}

	var newTags []models.BusinessTag
	existingTags := businessTagValues(business.Tags)
	for _, tag := range SplitList(row["tags"]) {
		if !containsFold(existingTags, tag) {
			newTags = append(newTags, models.BusinessTag{BusinessID: business.ID, Tag: tag})
		}
	}
	if len(newTags) > 0 {
		if err := s.Businesses().AddTags(ctx, newTags); err != nil {
			return err
		}
	}

	var newAccounts []models.BusinessSocial
	for _, account := range parseSocialAccounts(row["socialMediaAccounts"]) {
		if !businessHasSocial(business.SocialAccounts, account) {
			newAccounts = append(newAccounts, models.BusinessSocial{
				BusinessID: business.ID,
				Platform:   account.Platform,
				Handle:     account.Handle,
			})
		}
	}
	if len(newAccounts) > 0 {
		if err := s.Businesses().AddSocialAccounts(ctx, newAccounts); err != nil {
			return err
		}
	}

	addresses, err := p.buildAddresses(ctx, s, row)
	if err != nil {
		return err
	}
	var newAddresses []models.BusinessAddress
	for _, addr := range addresses {
		if !businessHasAddress(business.Addresses, addr) {
			newAddresses = append(newAddresses, models.BusinessAddress{
				BusinessID:    business.ID,
				StreetAddress: addr.Street,
				Unit:          addr.Unit,
				City:          addr.City,
				StateID:       addr.StateID,
				ZipCodeID:     addr.ZipCodeID,
			})
		}
	}
	if len(newAddresses) > 0 {
		if err := s.Businesses().AddAddresses(ctx, newAddresses); err != nil {
			return err
		}
	}

	return nil
}

func businessEmailValues(emails []models.BusinessEmail) []string {
	values := make([]string, 0, len(emails))
	for _, e := range emails {
		values = append(values, e.Email)
	}
	return values
}

func businessPhoneValues(phones []models.BusinessPhone) []string {
	values := make([]string, 0, len(phones))
	for _, p := range phones {
		values = append(values, p.PhoneNumber)
	}
	return values
}

func businessTagValues(tags []models.BusinessTag) []string {
	values := make([]string, 0, len(tags))
	for _, t := range tags {
		values = append(values, t.Tag)
	}
	return values
}

func businessHasSocial(accounts []models.BusinessSocial, account socialAccount) bool {
	for _, existing := range accounts {
		if strings.EqualFold(existing.Platform, account.Platform) && strings.EqualFold(existing.Handle, account.Handle) {
			return true
		}
	}
	return false
}

func businessHasAddress(addresses []models.BusinessAddress, addr importAddress) bool {
	for _, existing := range addresses {
		if strings.EqualFold(existing.StreetAddress, addr.Street) && strings.EqualFold(existing.City, addr.City) {
			return true
		}
	}
	return false
}
