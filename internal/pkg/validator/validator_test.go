package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", "", "two@@example.com"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "IsValidEmail(%q)", email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "IsValidEmail(%q)", email)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"urn:uuid:123e4567-e89b-12d3-a456-426614174000",
		"",
	}
	for _, s := range valid {
		assert.True(t, IsValidUUID(s), "IsValidUUID(%q)", s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidUUID(s), "IsValidUUID(%q)", s)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "", "2023/01/01"}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		assert.True(t, ok, "IsValidDate(%q)", s)
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		assert.False(t, ok, "IsValidDate(%q)", s)
	}
}

func TestMaxRunes(t *testing.T) {
	assert.True(t, MaxRunes("héllo", 5))
	assert.False(t, MaxRunes("héllo!", 5))
	assert.True(t, MaxRunes("", 0))
}

func TestIsValidCompanyUsername(t *testing.T) {
	assert.True(t, IsValidCompanyUsername("acme.corp"))
	assert.True(t, IsValidCompanyUsername("a-b_c"))
	assert.False(t, IsValidCompanyUsername("ab"))
	assert.False(t, IsValidCompanyUsername("acme corp"))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is required"},
	}
	assert.Equal(t, "email: email is required; password: password is required", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "invalid date"},
	}
	assert.Equal(t, map[string]string{"date": "invalid date"}, errs.ToMap())
}
