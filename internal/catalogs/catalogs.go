// Package catalogs holds the fixed, process-wide preference tables the
// dialogue offers to users. Everything here is read-only after init and
// safe for concurrent use.
package catalogs

// Moods maps a mood label to the framing line used when presenting results.
var Moods = map[string]string{
	"😔 Грусть":       "Вот уютные места, где можно немного отвлечься и отдохнуть.",
	"😍 Радость":      "Вот места, где ты сможешь зарядиться ещё больше!",
	"😠 Злость":       "Вот активности, чтобы выпустить пар и отвлечься.",
	"🙂 Спокойствие":  "Вот приятные и нейтральные локации для отдыха.",
	"🤯 Усталость":    "Вот места, где можно перезагрузиться и восстановиться.",
	"🤩 Вдохновение":  "Вот креативные пространства, чтобы зарядиться идеями.",
}

// MoodOrder fixes the keyboard layout; map iteration order is not stable.
var MoodOrder = []string{
	"😔 Грусть",
	"😍 Радость",
	"😠 Злость",
	"🙂 Спокойствие",
	"🤯 Усталость",
	"🤩 Вдохновение",
}

var Budgets = map[string]string{
	"💸 Эконом":  "Бюджетный вариант.",
	"💰 Средний": "Хороший баланс между ценой и атмосферой.",
	"💎 Премиум": "Премиальные впечатления ждут тебя!",
}

var BudgetOrder = []string{
	"💸 Эконом",
	"💰 Средний",
	"💎 Премиум",
}

// Category links a human-facing place category to its Overpass amenity tag.
type Category struct {
	ID      string
	Label   string
	Amenity string
}

var Categories = []Category{
	{ID: "cafe", Label: "☕ Кафе", Amenity: "cafe"},
	{ID: "restaurant", Label: "🍽 Рестораны", Amenity: "restaurant"},
	{ID: "bar", Label: "🍸 Бары", Amenity: "bar"},
	{ID: "cinema", Label: "🎬 Кино", Amenity: "cinema"},
	{ID: "theatre", Label: "🎭 Театры", Amenity: "theatre"},
	{ID: "library", Label: "📚 Библиотеки", Amenity: "library"},
}

// DefaultAmenity is what an unknown category falls back to.
const DefaultAmenity = "cafe"

func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func CategoryByLabel(label string) (Category, bool) {
	for _, c := range Categories {
		if c.Label == label {
			return c, true
		}
	}
	return Category{}, false
}

// AmenityForCategory resolves a category id to an Overpass amenity value,
// falling back to DefaultAmenity for anything unknown.
func AmenityForCategory(id string) string {
	if c, ok := CategoryByID(id); ok {
		return c.Amenity
	}
	return DefaultAmenity
}
