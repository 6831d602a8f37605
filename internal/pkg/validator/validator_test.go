package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane.doe@example.com"))
	assert.True(t, IsValidEmail("jane+hr@example.co.uk"))
	assert.False(t, IsValidEmail("jane.doe"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("jane@"))
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("EMP001"))
	assert.True(t, IsValidEmployeeCode("EMP123456"))
	assert.False(t, IsValidEmployeeCode("EMP12"))
	assert.False(t, IsValidEmployeeCode("EMP1234567"))
	assert.False(t, IsValidEmployeeCode("emp001"))
	assert.False(t, IsValidEmployeeCode("EMP00A"))
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-03-10")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())

	_, ok = IsValidDate("10-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2025-03-10T09:00:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-03-10T09:00:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-03-10 09:00")
	assert.False(t, ok)
}

func TestIsValidYearAndMonth(t *testing.T) {
	assert.True(t, IsValidYear(2020))
	assert.True(t, IsValidYear(2100))
	assert.False(t, IsValidYear(2019))
	assert.False(t, IsValidYear(2101))

	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid email format"},
		{Field: "year", Message: "must be between 2020 and 2100"},
	}

	assert.Equal(t, "email: invalid email format; year: must be between 2020 and 2100", errs.Error())
	assert.Equal(t, map[string]string{
		"email": "invalid email format",
		"year":  "must be between 2020 and 2100",
	}, errs.ToMap())
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}
