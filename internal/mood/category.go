package mood

// Category is one of the six closed mood classifications.
type Category string

const (
	Positive        Category = "POSITIVE"
	NeutralTired    Category = "NEUTRAL_TIRED"
	SadLow          Category = "SAD_LOW"
	AngryFrustrated Category = "ANGRY_FRUSTRATED"
	AnxiousStressed Category = "ANXIOUS_STRESSED"
	HeavyDeep       Category = "HEAVY_DEEP"
)

// DefaultCategory is returned whenever nothing better can be said:
// unknown button labels, text with no keyword hits, unknown category
// strings coming back from stored data.
const DefaultCategory = NeutralTired

// Categories lists every category in the closed set.
var Categories = []Category{
	Positive,
	NeutralTired,
	SadLow,
	AngryFrustrated,
	AnxiousStressed,
	HeavyDeep,
}

// priorityRank resolves ties when a message matches keywords from more
// than one category. Crisis language must always win over co-occurring
// positive or neutral language, so HEAVY_DEEP ranks highest.
var priorityRank = map[Category]int{
	Positive:        1,
	NeutralTired:    2,
	AnxiousStressed: 3,
	AngryFrustrated: 4,
	SadLow:          5,
	HeavyDeep:       6,
}

// Rank returns the classification priority of c, 0 for unknown values.
func (c Category) Rank() int {
	return priorityRank[c]
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	_, ok := priorityRank[c]
	return ok
}

// Normalize maps any out-of-set category string to the default. Data
// read back from storage or content files goes through this so an
// unknown value never escapes into response selection.
func Normalize(c Category) Category {
	if c.Valid() {
		return c
	}
	return DefaultCategory
}

// ButtonLabels maps the fixed mood keyboard labels to categories.
var ButtonLabels = map[string]Category{
	"😄 Happy":   Positive,
	"🙂 Okay":    NeutralTired,
	"😴 Tired":   NeutralTired,
	"😔 Sad":     SadLow,
	"😡 Angry":   AngryFrustrated,
	"😰 Anxious": AnxiousStressed,
	"🕳️ Empty":   HeavyDeep,
}

// ButtonOrder is the display order of the mood keyboard.
var ButtonOrder = []string{
	"😄 Happy",
	"🙂 Okay",
	"😴 Tired",
	"😔 Sad",
	"😡 Angry",
	"😰 Anxious",
	"🕳️ Empty",
}
