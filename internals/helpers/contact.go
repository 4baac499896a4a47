package helper

import "strings"

// ContactDigits extracts the digits of a contact string, normalizing a
// leading "0" to the Pakistani country code the way the profile pages
// build their WhatsApp links.
func ContactDigits(contact string) string {
	var b strings.Builder
	for _, r := range contact {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = "92" + digits[1:]
	}
	return digits
}

// WhatsAppLink builds a wa.me deep link from a raw contact string.
// Empty when the contact has no digits at all.
func WhatsAppLink(contact string) string {
	digits := ContactDigits(contact)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
