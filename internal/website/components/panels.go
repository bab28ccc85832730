package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// storyPanel is one numbered step of the walkthrough.
type storyPanel struct {
	number   string
	label    string
	title    string
	note     string
	body     string
	services []string
}

var story = []storyPanel{
	{
		number: "01", label: "Booking Magic",
		title:    "All Your Bookings, One System",
		note:     "No more manual data entry! Every booking from Booking.com, Agoda, or Airbnb flows straight into your system. Automatically.",
		body:     "Villa reservations from every channel land in one calendar with guest details, payment status and special requests.",
		services: []string{"booking-villas"},
	},
	{
		number: "02", label: "Activation",
		title:    "Engage Guests Before They Arrive",
		note:     "Guests get a welcome message the moment they book. Court times, surf lessons, airport pickup. They're excited before they land.",
		body:     "Pre-arrival messages on WhatsApp and email invite guests to book courts, transfers and experiences ahead of time.",
		services: []string{"notification-1"},
	},
	{
		number: "03", label: "Calendar Sync",
		title:    "Never Double-Book a Court Again",
		note:     "Walk-ins, guests, coaches. One live calendar for every court.",
		body:     "Court slots sync in real time across the website, front desk and guest messages, with reminders before every game.",
		services: []string{"booking-courts"},
	},
	{
		number: "04", label: "F&B Upsell",
		title:    "Turn Every Game Into Revenue",
		note:     "Post-match smoothie? The bar already knows. Guests order from the court with one tap.",
		body:     "Timed offers after each booking nudge guests to the restaurant and bar, and stock the fridge before they walk off the court.",
		services: []string{"notification-2"},
	},
	{
		number: "05", label: "AI Receptionist",
		title:    "24/7 AI Guest Support (So Your Staff Doesn't Have To)",
		note:     "3am question about the tide? Answered. In English, Tagalog or Spanish.",
		body:     "A trained assistant answers chat and voice questions about rooms, courts, surf and transfers, and hands off to staff when needed.",
		services: []string{"ai-chat", "ai-voice"},
	},
	{
		number: "06", label: "Brand Engine",
		title:    "Stay Top-of-Mind, Automatically",
		note:     "Tournament on Saturday? The poster's done before your coffee is.",
		body:     "Event posters, social posts and newsletters generated in your brand style and scheduled across your channels.",
		services: []string{"content"},
	},
	{
		number: "07", label: "Daily Pulse",
		title:    "Your Entire Operation, One Dashboard",
		note:     "Occupancy, court usage, F&B revenue. One screen, every morning.",
		body:     "A live dashboard and a daily summary show what happened yesterday and what is coming today.",
		services: []string{"dashboard"},
	},
}

// StoryPanels renders the numbered walkthrough with an add button for the
// services each step shows off.
func StoryPanels(p Page) g.Node {
	return Section(
		ID("story"),
		Class("story"),
		g.Group(g.Map(story, func(s storyPanel) g.Node {
			return Article(
				Class("panel"),
				ID("panel-"+s.number),
				HandwrittenNote(s.note),
				P(Class("panel-label"), Span(Class("panel-number"), g.Text(s.number)), g.Text(" "+s.label)),
				H2(g.Text(s.title)),
				P(g.Text(s.body)),
				Div(
					Class("panel-actions"),
					g.Group(g.Map(s.services, func(id string) g.Node {
						return Div(
							Class("panel-service"),
							Span(g.Text(p.Catalog.Name(id))),
							ToggleButton(p, id, ""),
						)
					})),
				),
			)
		})),
		Article(
			Class("panel panel-cta"),
			ID("panel-08"),
			HandwrittenNote("Pick what you need below. We'll take it from there."),
			P(Class("panel-label"), Span(Class("panel-number"), g.Text("08")), g.Text(" Get Started")),
			H2(g.Text("Ready to Transform Your Operations?")),
			A(Href("#configurator"), Class("btn btn-primary"), g.Text("Build your package")),
		),
	)
}
