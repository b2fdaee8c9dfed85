package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tb "gopkg.in/tucnak/telebot.v2"
)

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		unique string
		data   string
	}{
		{"unique only", "\fverify_user", "verify_user", ""},
		{"unique with data", "\ficon_select|123:abc:apple", "icon_select", "123:abc:apple"},
		{"data containing separator", "\fgender_select|123:a|b", "gender_select", "123:a|b"},
		{"empty data", "\fverify_user|", "verify_user", ""},
		{"plain text callback", "not-a-button", "", ""},
		{"empty payload", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, data := ParseCallbackData(tt.raw)
			assert.Equal(t, tt.unique, unique)
			assert.Equal(t, tt.data, data)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "@alice", DisplayName(&tb.User{Username: "alice", FirstName: "Alice"}))
	assert.Equal(t, "Bob", DisplayName(&tb.User{FirstName: "Bob"}))
}

func TestUserID(t *testing.T) {
	assert.Equal(t, "123456", UserID(&tb.User{ID: 123456}))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Male", titleCase("male"))
	assert.Equal(t, "Female", titleCase("female"))
	assert.Equal(t, "", titleCase(""))
}
