package util

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPhoneRequired = errors.New("Phone number is required")
	ErrPhoneInvalid  = errors.New("Please enter a valid 10-digit phone number")
	ErrEmailInvalid  = errors.New("Please enter a valid email address")
)

var (
	objectIDRe = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	phoneRe    = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")
)

// IsObjectIDHex reports whether s lexically looks like a 24 character hex identifier.
func IsObjectIDHex(s string) bool {
	return objectIDRe.MatchString(s)
}

// NormalizeObjectID returns the canonical lowercase form of s when it parses
// as an object id.
func NormalizeObjectID(s string) (string, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}

// ValidatePhone strips spacing and punctuation and checks the result against
// the mobile number pattern. The cleaned number is returned on success.
func ValidatePhone(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", ErrPhoneRequired
	}
	clean := phoneStrip.Replace(phone)
	if !phoneRe.MatchString(clean) {
		return "", ErrPhoneInvalid
	}
	return clean, nil
}

// ValidateEmail accepts an empty address; anything else must look like an address.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil
	}
	if !emailRe.MatchString(email) {
		return "", ErrEmailInvalid
	}
	return strings.ToLower(email), nil
}

func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
