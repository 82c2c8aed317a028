package seed

import "regexp"

type categorySeed struct {
	Name          string
	Subcategories []string
	DisplayOrder  int
	ImageFile     string
}

var taxonomy = []categorySeed{
	{"Curtain", []string{"Ring Curtain", "American Pleat Curtains", "Elizabeth Curtain"}, 1, "curtain.jpeg"},
	{"Window Blinds", []string{"Venetian Blinds"}, 2, "Window Blinds.jpeg"},
	{"Wallpaper", []string{"Regular", "Roll Form Wallpaper"}, 3, "Wallpaper.jpeg"},
	{"Mattresses", []string{"Innerspring Mattress"}, 4, "Mattresses.jpeg"},
	{"sofas", nil, 5, "sofas.jpeg"},
	{"bedbacks", nil, 6, "bedbacks.jpeg"},
	{"Flooring", []string{"Wooden Flooring", "Vinyl Flooring"}, 7, "Flooring.jpeg"},
	{"Bedsheet", []string{"cotton bedsheets"}, 8, "Bedsheet.jpeg"},
	{"Towel", []string{"Bath Towels"}, 9, "Towel.jpeg"},
	{"Comforter", []string{"cotton comforter"}, 10, "Comforter.jpeg"},
	{"Mattress Protector", []string{"Waterproof Mattress Protector"}, 11, "Mattress Protector.jpeg"},
	{"Doormat", []string{"rubber door mat"}, 12, "Doormat.jpeg"},
	{"Bedrunner", []string{"cotton bedrunner"}, 13, "Bedrunner.jpeg"},
	{"Pillow", []string{"Memory Foam Pillow"}, 14, "Pillow.jpeg"},
}

type bannerSeed struct {
	Category string
	Title    string
	Subtitle string
	Key      string
	Match    []*regexp.Regexp
}

var banners = []bannerSeed{
	{
		Category: "Curtain",
		Title:    "Ring Curtains That Fall Perfectly",
		Subtitle: "Clean lines. Breezy drape. Your room, instantly calmer.",
		Key:      "curtain-ring-hero",
		Match:    rx(`(?i)ring.*curtain`, `(?i)curtain.*ring`, `(?i)^curtain`),
	},
	{
		Category: "Wallpaper",
		Title:    "Wallpapers That Set the Mood",
		Subtitle: "From subtle textures to bold statements. Start with your feature wall.",
		Key:      "wallpaper-regular-hero",
		Match:    rx(`(?i)wallpaper`),
	},
	{
		Category: "sofas",
		Title:    "Make the Sofa the Star",
		Subtitle: "Shape, fabric, and comfort that anchor your living room.",
		Key:      "sofa-designer-hero",
		Match:    rx(`(?i)^sofas?`, `(?i)couch`),
	},
	{
		Category: "Flooring",
		Title:    "Wood Underfoot, Warmth Everywhere",
		Subtitle: "Durable finishes, timeless grains. Designed to age beautifully.",
		Key:      "flooring-wood-hero",
		Match:    rx(`(?i)floor`),
	},
	{
		Category: "Bedsheet",
		Title:    "Cotton Sheets That Breathe",
		Subtitle: "Soft to touch, crisp to look. Sleep the way you want.",
		Key:      "bedsheet-cotton-hero",
		Match:    rx(`(?i)bed[-\s]?sheet`),
	},
	{
		Category: "Window Blinds",
		Title:    "Light Control, Done Right",
		Subtitle: "Tilt, filter, and frame daylight with sleek Venetian blinds.",
		Key:      "blinds-venetian-hero",
		Match:    rx(`(?i)window.*blind`, `(?i)^blind`, `(?i)venetian`),
	},
}

func rx(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
