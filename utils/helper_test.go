package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestParseMoneyOrZero_PlainNumbers(t *testing.T) {
	cases := map[string]string{
		"1000":       "1000",
		"1000.50":    "1000.5",
		"0":          "0",
		"  2500  ":   "2500",
		"-1500":      "-1500",
		"- 1500":     "-1500",
		"0.0001":     "0.0001",
		"1234567.89": "1234567.89",
	}
	for input, want := range cases {
		got := ParseMoneyOrZero(input)
		if got.String() != want {
			t.Errorf("ParseMoneyOrZero(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestParseMoneyOrZero_StripsFormatting(t *testing.T) {
	cases := map[string]string{
		"1,000,000":      "1000000",
		"1,000,000.25":   "1000000.25",
		"500000 MMK":     "500000",
		"500000 mmk":     "500000",
		"Ks 750,000":     "750000",
		"ks750000":       "750000",
		"-1,000 MMK":     "-1000",
		"  2,500 Ks   ":  "2500",
		"1,234,567 mmk ": "1234567",
	}
	for input, want := range cases {
		got := ParseMoneyOrZero(input)
		if got.String() != want {
			t.Errorf("ParseMoneyOrZero(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestParseMoneyOrZero_InvalidInputsReturnZero(t *testing.T) {
	inputs := []string{"", "   ", "abc", "MMK", "Ks", "-", "..", "1.2.3"}
	for _, input := range inputs {
		got := ParseMoneyOrZero(input)
		if !got.IsZero() {
			t.Errorf("ParseMoneyOrZero(%q) = %s, want 0", input, got)
		}
	}
}

func TestParseFloatOrZero(t *testing.T) {
	if got := ParseFloatOrZero("1,000.5"); got != 1000.5 {
		t.Errorf("ParseFloatOrZero(\"1,000.5\") = %v, want 1000.5", got)
	}
	if got := ParseFloatOrZero("garbage"); got != 0 {
		t.Errorf("ParseFloatOrZero(\"garbage\") = %v, want 0", got)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+tag@sub.domain.org"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	invalid := []string{"", "not-an-email", "missing@tld@twice"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	at := time.Date(2025, time.March, 15, 13, 45, 12, 999, time.UTC)

	start := StartOfDay(at)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", start)
	}
	if start.Day() != 15 || start.Month() != time.March {
		t.Errorf("StartOfDay changed the date: %v", start)
	}

	end := EndOfDay(at)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndOfDay = %v, want 23:59:59", end)
	}
	if end.Day() != 15 {
		t.Errorf("EndOfDay changed the date: %v", end)
	}
}

func TestGetThisMonthRange(t *testing.T) {
	from, to := GetThisMonthRange()
	now := time.Now()
	if from.Day() != 1 || from.Month() != now.Month() || from.Year() != now.Year() {
		t.Errorf("GetThisMonthRange from = %v, want first of current month", from)
	}
	if !to.After(from) {
		t.Errorf("GetThisMonthRange to (%v) is not after from (%v)", to, from)
	}
	if to.Month() != now.Month() {
		t.Errorf("GetThisMonthRange to = %v, want within current month", to)
	}
}

func TestProcessValidationErrors(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"omitempty,email"`
	}

	v := validator.New()
	err := v.Struct(form{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	fields := ProcessValidationErrors(err)
	if fields["name"] != "required" {
		t.Errorf("fields[name] = %q, want required", fields["name"])
	}
	if fields["email"] != "email" {
		t.Errorf("fields[email] = %q, want email", fields["email"])
	}
}

func TestProcessValidationErrors_NonValidationError(t *testing.T) {
	fields := ProcessValidationErrors(errors.New("boom"))
	if len(fields) != 0 {
		t.Errorf("expected no fields for a non-validation error, got %v", fields)
	}
}
