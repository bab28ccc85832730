package imagegen

import (
	"fmt"
	"regexp"
	"strings"
)

// BrandSuffix is appended to every prompt. Text is drawn by the overlay, so
// the model is told to leave the photo clean.
const BrandSuffix = ". Professional resort photography, vibrant and energetic, suitable for social media marketing. " +
	"IMPORTANT: DO NOT include any text, words, letters, or typography in the image. " +
	"Pure photography only, no text overlays."

// Option is a selectable value with a human label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var EventTypes = []Option{
	{"tournament", "Tournament"},
	{"ladies", "Ladies Event"},
	{"social", "Social / Mix"},
	{"training", "Training Session"},
	{"corporate", "Corporate Event"},
	{"kids", "Kids / Juniors"},
}

var PhotoStyles = []Option{
	{"action", "Action Shot"},
	{"lifestyle", "Lifestyle"},
	{"aerial", "Aerial View"},
	{"sunset", "Sunset Silhouette"},
	{"celebration", "Celebration"},
	{"courtside", "Courtside"},
}

var eventDescriptions = map[string]string{
	"tournament": "competitive tournament match, 2-3 focused athletes",
	"ladies":     "women's padel event, 2-3 female players",
	"social":     "friendly social match, 2-3 mixed players",
	"training":   "padel coaching session, 1-2 players with instructor",
	"corporate":  "corporate team event, 2-3 professional players",
	"kids":       "junior padel session, 2-3 young players",
}

var styleDescriptions = map[string]string{
	"action": "CINEMATIC action shot, 2-3 players at PEAK DRAMATIC MOMENT mid-rally, STRONG SUN FLARE in background, " +
		"atmospheric glow, dynamic shadows, dramatic lighting with high contrast, movie poster style, shallow depth of field, epic sports photography",
	"lifestyle": "MOVIE-STYLE lifestyle shot, 2-3 players in golden hour DRAMATIC LIGHTING, atmospheric sun rays, warm glow effects, " +
		"cinematic depth, premium leisure aesthetic, high-end commercial photography with visual impact",
	"aerial": "DRAMATIC overhead drone shot, pink court from above with STRIKING VISUAL COMPOSITION, strong shadows creating depth, " +
		"2-3 players visible, atmospheric lighting, cinematic color grading, movie poster aesthetic",
	"sunset": "EPIC sunset shot with INTENSE SUN FLARE, 1-2 players silhouetted against VIBRANT orange/pink sky, " +
		"dramatic atmospheric effects, cinematic lighting with lens flares, movie-quality golden hour photography",
	"celebration": "DYNAMIC celebration moment, 2-3 players mid-celebration with DRAMATIC LIGHTING, strong sun rays, " +
		"atmospheric glow, high energy, cinematic sports photography, movie poster intensity",
	"courtside": "CINEMATIC courtside perspective, dramatic depth of field, STRONG BACKLIGHTING with sun flares, " +
		"equipment/refreshments in artistic focus, movie-style visual storytelling, premium commercial aesthetic",
}

const (
	defaultEventDescription = "padel event with 2-3 players"
	defaultStyleDescription = "professional close-up photography"
)

// BuildPrompt describes the photo for an event type and photo style. Unknown
// values fall back to generic descriptions.
func BuildPrompt(eventType, photoStyle string) string {
	event, ok := eventDescriptions[eventType]
	if !ok {
		event = defaultEventDescription
	}
	style, ok := styleDescriptions[photoStyle]
	if !ok {
		style = defaultStyleDescription
	}

	return fmt.Sprintf("%s, %s, VIBRANT HOT PINK padel court surface prominently visible, "+
		"DRAMATIC CINEMATIC LIGHTING with sun flares and atmospheric effects, lush tropical environment "+
		"(palm trees, dramatic skies), MOVIE POSTER aesthetic, high-impact visual with depth and excitement, "+
		"premium leisure resort vibe, professional cinematic photography, dynamic composition", event, style)
}

// Brand appends the brand suffix to prompt.
func Brand(prompt string) string {
	return prompt + BrandSuffix
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// DownloadName is the suggested file name for an event's post.
func DownloadName(eventName string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(eventName), "-"), "-")
	if slug == "" {
		slug = "event"
	}
	return "padel-palms-" + slug + ".png"
}
