package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits for form fields.
const (
	maxNameLen        = 200
	maxDescriptionLen = 5_000
	maxContactLen     = 100
	maxAddressLen     = 300
	maxURLLen         = 300
	maxSKULen         = 50
)

var (
	// priceRe accepts plain decimal prices: "10", "19.99", "0.50".
	priceRe = regexp.MustCompile(`^\d{1,10}(\.\d{1,2})?$`)

	// hexColorRe accepts #RGB and #RRGGBB.
	hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// validEmail is a loose shape check; the mail server is the real validator.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

// validateRegister checks sign-up inputs and returns the first error found.
func validateRegister(email, password, firstName, lastName, businessName string) string {
	if !validEmail(email) {
		return "A valid email is required."
	}
	if len(password) < 8 {
		return "Password must be at least 8 characters."
	}
	if strings.TrimSpace(firstName) == "" {
		return "First name is required."
	}
	if strings.TrimSpace(lastName) == "" {
		return "Last name is required."
	}
	if strings.TrimSpace(businessName) == "" {
		return "Business name is required."
	}
	if utf8.RuneCountInString(businessName) > maxNameLen {
		return "Business name is too long (max 200 characters)."
	}
	return ""
}

// validateProduct checks product form inputs and returns the first error
// found. Name, description, price, and category are required.
func validateProduct(name, description, price, categoryID string) string {
	if strings.TrimSpace(name) == "" {
		return "Product name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Product name is too long (max 200 characters)."
	}
	if strings.TrimSpace(description) == "" {
		return "Description is required."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 5,000 characters)."
	}
	if !priceRe.MatchString(price) {
		return "Price must be a positive amount like 19.99."
	}
	if strings.TrimSpace(categoryID) == "" {
		return "Category is required."
	}
	return ""
}

// validateBusiness checks settings form inputs and returns the first error found.
func validateBusiness(name, description, primaryColor, website string) string {
	if strings.TrimSpace(name) == "" {
		return "Business name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Business name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 5,000 characters)."
	}
	if primaryColor != "" && !hexColorRe.MatchString(primaryColor) {
		return "Primary color must be a hex value like #33C3F0."
	}
	if utf8.RuneCountInString(website) > maxURLLen {
		return "Website URL is too long (max 300 characters)."
	}
	return ""
}

// validateCategory checks the inline category creation input.
func validateCategory(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Category name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Category name is too long (max 200 characters)."
	}
	return ""
}
