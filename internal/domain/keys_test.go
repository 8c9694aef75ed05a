package domain

import "testing"

func TestNormalizeKeyAcceptsAndNormalizes(t *testing.T) {
	cases := map[string]string{
		"greet":            "greet",
		"  Greet  ":        "greet",
		"Team/Onboarding":  "team/onboarding",
		"notes.v2":         "notes.v2",
		"some-name_v1":     "some-name_v1",
		"0numeric-start":   "0numeric-start",
	}
	for input, want := range cases {
		got, err := NormalizeKey(input)
		if err != nil {
			t.Fatalf("NormalizeKey(%q): unexpected error %v", input, err)
		}
		if got != want {
			t.Fatalf("NormalizeKey(%q): want=%q got=%q", input, want, got)
		}
	}
}

func TestNormalizeKeyRejectsInvalid(t *testing.T) {
	invalid := []string{
		"",
		"ab",            // too short
		"-leading-dash",
		".leading-dot",
		"has space",
		"has{braces}",
		"quest?on",
	}
	for _, input := range invalid {
		_, err := NormalizeKey(input)
		if err == nil {
			t.Fatalf("NormalizeKey(%q): expected error, got none", input)
		}
		if !IsCode(err, CodeValidation) {
			t.Fatalf("NormalizeKey(%q): expected validation code, got %v", input, CodeOf(err))
		}
	}
}

func TestNextVersion(t *testing.T) {
	if got := NextVersion(nil); got != 1 {
		t.Fatalf("NextVersion(nil): want=1 got=%d", got)
	}
	current := 4
	if got := NextVersion(&current); got != 5 {
		t.Fatalf("NextVersion(4): want=5 got=%d", got)
	}
}
