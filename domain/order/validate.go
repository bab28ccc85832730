package order

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
)

const minPhoneDigits = 7

// ValidateContact checks the required contact fields. It returns a validation
// error naming every bad field, or nil.
func ValidateContact(c Contact) error {
	problems := make(map[string]string)

	if msg := checkEmail(c.Email); msg != "" {
		problems["email"] = msg
	}
	if msg := checkPhone(c.Phone); msg != "" {
		problems["phone"] = msg
	}

	if len(problems) > 0 {
		return apperror.NewValidation(problems)
	}
	return nil
}

func checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "Enter a valid email address"
	}
	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return "Enter a valid email address"
	}
	return ""
}

func checkPhone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return "Phone number is required"
	}
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return "Enter a phone number we can call"
	}
	return ""
}

// Normalize trims surrounding whitespace from every contact field.
func (c Contact) Normalize() Contact {
	return Contact{
		Email:  strings.TrimSpace(c.Email),
		Phone:  strings.TrimSpace(c.Phone),
		Name:   strings.TrimSpace(c.Name),
		Resort: strings.TrimSpace(c.Resort),
	}
}
