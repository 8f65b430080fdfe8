package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRegex = regexp.MustCompile(`^\d{10}$`)

	idProofRules = map[string]*regexp.Regexp{
		"Aadhaar":  regexp.MustCompile(`^\d{12}$`),
		"PAN":      regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`),
		"Passport": regexp.MustCompile(`^[A-Z]\d{7}$`),
		"VoterID":  regexp.MustCompile(`^\d{10}$`),
		"DL":       regexp.MustCompile(`^[A-Za-z0-9]{15}$`),
	}

	paymentMethods = map[string]string{"UPI": "UPI", "CASH": "Cash"}
)

func validateGuest(i int, g GuestForm) error {
	field := func(name string) string { return fmt.Sprintf("guests[%d].%s", i, name) }

	name := strings.TrimSpace(g.Name)
	if name == "" {
		return invalid(field("name"), "name is required")
	}
	if !nameRegex.MatchString(name) {
		return invalid(field("name"), "only alphabets allowed")
	}
	if g.Age < 1 || g.Age > 99 {
		return invalid(field("age"), "age must be 1 or 2 digits")
	}
	if !phoneRegex.MatchString(strings.TrimSpace(g.Phone)) {
		return invalid(field("phone"), "phone must be exactly 10 digits")
	}
	if strings.TrimSpace(g.Gender) == "" {
		return invalid(field("gender"), "gender is required")
	}
	if !g.IsPrimary {
		return nil
	}

	rule, ok := idProofRules[g.IDProofType]
	if !ok {
		return invalid(field("id_proof_type"), "unsupported id proof type %q", g.IDProofType)
	}
	if !rule.MatchString(strings.TrimSpace(g.IDProofNumber)) {
		return invalid(field("id_proof_number"), "invalid %s number", g.IDProofType)
	}
	required := []struct{ name, value string }{
		{"address", g.Address},
		{"city", g.City},
		{"state", g.State},
		{"emergency_contact_name", g.EmergencyContactName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(field(r.name), "%s is required", strings.ReplaceAll(r.name, "_", " "))
		}
	}
	if !phoneRegex.MatchString(strings.TrimSpace(g.EmergencyContactNumber)) {
		return invalid(field("emergency_contact_number"), "emergency contact number must be 10 digits")
	}
	return nil
}

// ValidateGuests checks a party and returns it with exactly one primary guest.
// When nobody is flagged the first guest becomes primary.
func ValidateGuests(guests []GuestForm) ([]GuestForm, error) {
	if len(guests) == 0 {
		return nil, invalid("guests", "at least one guest is required")
	}
	out := make([]GuestForm, len(guests))
	copy(out, guests)

	primaries := 0
	for _, g := range out {
		if g.IsPrimary {
			primaries++
		}
	}
	switch {
	case primaries == 0:
		out[0].IsPrimary = true
	case primaries > 1:
		return nil, invalid("guests", "only one primary guest is allowed")
	}

	for i, g := range out {
		if err := validateGuest(i, g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NormalizePaymentMethod accepts UPI or Cash in any case.
func NormalizePaymentMethod(method string) (string, error) {
	m, ok := paymentMethods[strings.ToUpper(strings.TrimSpace(method))]
	if !ok {
		return "", invalid("payment_method", "payment method must be UPI or Cash")
	}
	return m, nil
}

func validateAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}
