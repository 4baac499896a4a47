package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactDigits(t *testing.T) {
	assert.Equal(t, "923001234567", ContactDigits("0300-1234567"))
	assert.Equal(t, "923001234567", ContactDigits("+92 300 1234567"))
	assert.Equal(t, "", ContactDigits("no digits here"))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/923001234567", WhatsAppLink("0300-1234567"))
	assert.Equal(t, "", WhatsAppLink(""))
}
