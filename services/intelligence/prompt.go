package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"trailmate/models"
)

// DefaultHistoryWindow is how many transcript messages are replayed to the model.
const DefaultHistoryWindow = 8

// offerPhrases are lowercase fragments that mark an assistant message as a
// booking offer when it carries no explicit offer tag.
var offerPhrases = []string{
	"would you like to book",
	"would you like me to book",
	"do you want to book",
	"do you want me to book",
	"shall i book",
	"should i book",
	"want me to book",
	"like me to reserve",
	"confirm your booking",
	"confirm the booking",
	"ready to book",
}

const persona = `You are Trailmate, a friendly outdoor-activity assistant inside a mobile app.
You help the user discover locations and activities and can book activities for them.
Answer concisely and only with information from the data below.`

const bookingRules = `Booking rules:
1. Only book when ACTIVE_BOOKING_DISCUSSION is true and the user's latest message clearly confirms it.
2. To book, reply with exactly ` + BookingSentinel + `<activityId> and nothing else.
3. When you suggest one specific activity and ask whether to book it, end your reply with a new line containing ` + OfferMarker + `<activityId>.
4. Only use activity ids listed under AVAILABLE ACTIVITIES. Never invent ids.
5. Never book an activity the user already appears in under USER BOOKINGS.
6. If the user has not confirmed, ask for confirmation instead of booking.`

// Prompt is the assembled instruction block for one turn.
type Prompt struct {
	Text                    string
	ActiveBookingDiscussion bool
}

// ContextAssembler renders the snapshot and recent transcript into a Prompt.
type ContextAssembler struct {
	HistoryWindow int
}

type locationView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Place       string `json:"place,omitempty"`
	Category    string `json:"categoryId,omitempty"`
}

type activityView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Dates         string   `json:"dates,omitempty"`
	Times         string   `json:"times,omitempty"`
	EstimatedCost float64  `json:"estimatedCost"`
	DurationMin   int      `json:"durationMinutes,omitempty"`
	Participants  int      `json:"participants"`
	LocationIDs   []string `json:"locationIds,omitempty"`
}

type bookingView struct {
	ActivityID string `json:"activityId"`
	Status     string `json:"status"`
}

func rangeOf(from, to string) string {
	switch {
	case from == "" && to == "":
		return ""
	case to == "" || to == from:
		return from
	case from == "":
		return to
	}
	return from + " to " + to
}

func (a ContextAssembler) window() int {
	if a.HistoryWindow > 0 {
		return a.HistoryWindow
	}
	return DefaultHistoryWindow
}

// Assemble builds the prompt for the newest turn. history must already
// contain the user's latest message.
func (a ContextAssembler) Assemble(snap *Snapshot, history []models.ConversationMessage) Prompt {
	recent := history
	if n := a.window(); len(recent) > n {
		recent = recent[len(recent)-n:]
	}
	active := ActiveBookingDiscussion(history)

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")

	name := snap.Profile.DisplayName
	if name == "" {
		name = "the user"
	}
	home := snap.Profile.Location
	if home == "" {
		home = "unknown"
	}
	fmt.Fprintf(&b, "USER: %s\nUSER HOME LOCATION: %s\n\n", name, home)

	locs := make([]locationView, 0, len(snap.Locations))
	for _, l := range snap.Locations {
		locs = append(locs, locationView{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			Place:       l.PlaceDescription,
			Category:    l.CategoryID,
		})
	}
	writeJSONSection(&b, "LOCATIONS", locs)

	acts := make([]activityView, 0, len(snap.Activities))
	for _, act := range snap.Activities {
		if !act.Available() {
			continue
		}
		acts = append(acts, activityView{
			ID:            act.ID,
			Title:         act.Title,
			Description:   act.Description,
			Difficulty:    act.Difficulty,
			Dates:         rangeOf(act.StartDate, act.EndDate),
			Times:         rangeOf(act.StartTime, act.EndTime),
			EstimatedCost: act.EstimatedCost,
			DurationMin:   act.EstimatedDuration,
			Participants:  act.CurrentParticipants,
			LocationIDs:   act.LocationIDs,
		})
	}
	writeJSONSection(&b, "AVAILABLE ACTIVITIES", acts)

	bookings := make([]bookingView, 0, len(snap.Bookings))
	for _, bk := range snap.Bookings {
		bookings = append(bookings, bookingView{ActivityID: bk.ActivityID, Status: string(bk.Status)})
	}
	writeJSONSection(&b, "USER BOOKINGS", bookings)

	b.WriteString("RECENT CONVERSATION:\n")
	for _, m := range recent {
		if m.IsUser() {
			b.WriteString("User: ")
		} else {
			b.WriteString("AI: ")
		}
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "ACTIVE_BOOKING_DISCUSSION: %t\n", active)
	if active {
		if offer := lastOffer(history); offer != nil {
			fmt.Fprintf(&b, "OFFERED_ACTIVITY: %s\n", offer.ActivityID)
		}
	}
	b.WriteString("\n")
	b.WriteString(bookingRules)
	b.WriteString("\n")

	return Prompt{Text: b.String(), ActiveBookingDiscussion: active}
}

func writeJSONSection(b *strings.Builder, title string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte("[]")
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", title, data)
}

func lastAssistant(history []models.ConversationMessage) *models.ConversationMessage {
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].IsUser() {
			return &history[i]
		}
	}
	return nil
}

func lastOffer(history []models.ConversationMessage) *models.Offer {
	if m := lastAssistant(history); m != nil {
		return m.Offer
	}
	return nil
}

// ActiveBookingDiscussion reports whether the most recent assistant message
// was a booking offer: an explicit offer tag, or one of the offer phrases.
func ActiveBookingDiscussion(history []models.ConversationMessage) bool {
	m := lastAssistant(history)
	if m == nil {
		return false
	}
	if m.Offer != nil {
		return true
	}
	text := strings.ToLower(m.Text)
	for _, p := range offerPhrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
