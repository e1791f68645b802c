package format

// Item state codes used by the checkout API.
const (
	StateAdvertised  = "AD"
	StateBrought     = "BR"
	StateStaged      = "ST"
	StateSold        = "SO"
	StateMissing     = "MI"
	StateReturned    = "RE"
	StateCompensated = "CO"
)

var stateLabels = map[string]string{
	StateAdvertised:  "Advertised",
	StateBrought:     "Brought to event",
	StateStaged:      "Staged for selling",
	StateSold:        "Sold",
	StateMissing:     "Missing",
	StateReturned:    "Returned to vendor",
	StateCompensated: "Compensated to vendor",
}

// States lists the state codes in lifecycle order.
var States = []string{
	StateAdvertised,
	StateBrought,
	StateStaged,
	StateSold,
	StateMissing,
	StateReturned,
	StateCompensated,
}

// StateLabel returns the human-readable label for a state code. Codes
// outside the enumeration have no label.
func StateLabel(code string) (string, bool) {
	label, ok := stateLabels[code]
	return label, ok
}

var typeLabels = map[string]string{
	"manga-finnish":    "Finnish manga book",
	"manga-english":    "English manga book",
	"manga-other":      "Manga book in another language",
	"book":             "Non-manga book",
	"magazine":         "Magazine",
	"movie-tv":         "Movie or TV-series",
	"game":             "Game",
	"figurine-plushie": "Figurine or a stuffed toy",
	"clothing":         "Clothing",
	"other":            "Other item",
}

// ItemTypes lists the item type keys in display order.
var ItemTypes = []string{
	"manga-finnish",
	"manga-english",
	"manga-other",
	"book",
	"magazine",
	"movie-tv",
	"game",
	"figurine-plushie",
	"clothing",
	"other",
}

// TypeLabel returns the title of an item type key, or the key itself when
// the server uses a type this client does not know.
func TypeLabel(key string) string {
	if label, ok := typeLabels[key]; ok {
		return label
	}
	return key
}
