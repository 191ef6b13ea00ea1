package ai

import "testing"

func TestInterpretExtractsSentinelID(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare", "BOOK_ACTIVITY:act123", "act123"},
		{"trailing newline", "BOOK_ACTIVITY:act123\n", "act123"},
		{"surrounding text", "Sure thing! BOOK_ACTIVITY:act123 booking now.", "act123"},
		{"space after colon", "BOOK_ACTIVITY: act123", "act123"},
		{"next line text", "BOOK_ACTIVITY:act-9_Z\nThanks!", "act-9_Z"},
		{"tab terminated", "ok BOOK_ACTIVITY:xyz\tdone", "xyz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpret(tc.raw)
			if got.Kind != ReplyBooking {
				t.Fatalf("expected booking reply, got %s", got.Kind)
			}
			if got.ActivityID != tc.want {
				t.Fatalf("expected id %q, got %q", tc.want, got.ActivityID)
			}
		})
	}
}

func TestInterpretLeavesPlainTextUnchanged(t *testing.T) {
	for _, raw := range []string{
		"Here are three hikes near you.",
		"  leading and trailing space  \n",
		"BOOK ACTIVITY act123",
		"We offer OFFER_ACTIVITY:act1 style tags too",
		"",
	} {
		got := Interpret(raw)
		if got.Kind != ReplyMessage || got.Text != raw {
			t.Fatalf("expected %q unchanged, got %+v", raw, got)
		}
	}
}

func TestInterpretSkipsWhitespaceBeforeID(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"sentinel at end", "BOOK_ACTIVITY:", ""},
		{"only whitespace after", "BOOK_ACTIVITY: \n\t", ""},
		{"newline before id", "BOOK_ACTIVITY:\nact123", "act123"},
		{"crlf before id", "BOOK_ACTIVITY:\r\nact123\r\n", "act123"},
		{"spaces and newline", "BOOK_ACTIVITY:  \n  act123\n", "act123"},
		{"tab before id", "BOOK_ACTIVITY:\tact123", "act123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpret(tc.raw)
			if got.Kind != ReplyBooking {
				t.Fatalf("expected booking reply, got %s", got.Kind)
			}
			if got.ActivityID != tc.want {
				t.Fatalf("expected id %q, got %q", tc.want, got.ActivityID)
			}
			if tc.want == "" && ValidActivityID(got.ActivityID) {
				t.Fatal("empty id must not validate")
			}
		})
	}
}

func TestValidActivityID(t *testing.T) {
	valid := []string{"act123", "A-b_9", "x"}
	invalid := []string{"", "act 1", "act/1", "act123.", "$where"}
	for _, id := range valid {
		if !ValidActivityID(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}
	for _, id := range invalid {
		if ValidActivityID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}

func TestSplitOffer(t *testing.T) {
	text, offer := SplitOffer("The Ridge Walk starts at 7am. Would you like to book it?\nOFFER_ACTIVITY:act42")
	if text != "The Ridge Walk starts at 7am. Would you like to book it?" {
		t.Fatalf("unexpected cleaned text %q", text)
	}
	if offer == nil || offer.ActivityID != "act42" {
		t.Fatalf("expected offer act42, got %+v", offer)
	}

	text, offer = SplitOffer("No offer here.")
	if text != "No offer here." || offer != nil {
		t.Fatalf("expected untouched text, got %q %+v", text, offer)
	}

	text, offer = SplitOffer("Shall I book it?\nOFFER_ACTIVITY:\nact42\nSee you there.")
	if text != "Shall I book it?\n\nSee you there." || offer == nil || offer.ActivityID != "act42" {
		t.Fatalf("expected id on the next line to be taken, got %q %+v", text, offer)
	}

	text, offer = SplitOffer("Try this one OFFER_ACTIVITY:bad/id")
	if text != "Try this one" || offer != nil {
		t.Fatalf("expected marker stripped without offer, got %q %+v", text, offer)
	}
}
