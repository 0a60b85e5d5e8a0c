package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[\d\s\-()+.]{10,}$`)
	zipRegex   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// ValidateEmail checks basic email format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidatePhone accepts common phone formats with at least 10 digits
// worth of characters
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// ValidateZipcode checks US zip codes (12345 or 12345-6789)
func ValidateZipcode(zip string) bool {
	return zipRegex.MatchString(strings.TrimSpace(zip))
}

// PatronInput is the validatable subset of a patron record
type PatronInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	MailingStreet  string
	MailingCity    string
	MailingState   string
	MailingZipcode string
}

// ValidatePatron applies the patron business rules: names at least two
// characters, email or phone required (and well-formed when present),
// and all mailing address fields required together. Returns a map of
// field name to error message; empty means valid.
func ValidatePatron(in PatronInput) map[string]string {
	errors := map[string]string{}

	if len(strings.TrimSpace(in.FirstName)) < 2 {
		errors["first_name"] = "First name must be at least 2 characters"
	}
	if len(strings.TrimSpace(in.LastName)) < 2 {
		errors["last_name"] = "Last name must be at least 2 characters"
	}

	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	if email == "" && phone == "" {
		errors["contact"] = "Either email or phone number is required"
	}
	if email != "" && !ValidateEmail(email) {
		errors["email"] = "Please enter a valid email address"
	}
	if phone != "" && !ValidatePhone(phone) {
		errors["phone"] = "Please enter a valid phone number"
	}

	if strings.TrimSpace(in.MailingStreet) == "" {
		errors["mailing_street"] = "Street address is required"
	}
	if strings.TrimSpace(in.MailingCity) == "" {
		errors["mailing_city"] = "City is required"
	}
	if strings.TrimSpace(in.MailingState) == "" {
		errors["mailing_state"] = "State is required"
	}
	if strings.TrimSpace(in.MailingZipcode) == "" {
		errors["mailing_zipcode"] = "Zip code is required"
	} else if !ValidateZipcode(in.MailingZipcode) {
		errors["mailing_zipcode"] = "Please enter a valid zip code (e.g., 12345 or 12345-6789)"
	}

	return errors
}
