package core

// Category is one entry of the fixed spending-category catalog: a stable id,
// an icon glyph, and a display name per language code.
type Category struct {
	ID    string
	Icon  string
	Names map[string]string
}

// Name returns the display name for the given language code, falling back to
// English when the code is unknown.
func (c Category) Name(lang string) string {
	if n, ok := c.Names[lang]; ok {
		return n
	}
	return c.Names["en"]
}

// Languages the catalog carries labels for.
var CatalogLanguages = []string{"en", "hi", "te"}

var catalog = []Category{
	{ID: "milk", Icon: "🥛", Names: map[string]string{"en": "Milk", "hi": "दूध", "te": "పాలు"}},
	{ID: "coffee", Icon: "☕", Names: map[string]string{"en": "Coffee/Tea", "hi": "चाय/कॉफ़ी", "te": "టీ/కాఫీ"}},
	{ID: "groceries", Icon: "🛒", Names: map[string]string{"en": "Groceries", "hi": "किराना", "te": "కిరాణా"}},
	{ID: "vegetables", Icon: "🥦", Names: map[string]string{"en": "Vegetables", "hi": "सब्ज़ियाँ", "te": "కూరగాయలు"}},
	{ID: "water", Icon: "💧", Names: map[string]string{"en": "Water", "hi": "पानी", "te": "నీరు"}},
	{ID: "gas", Icon: "🔥", Names: map[string]string{"en": "Cooking Gas", "hi": "गैस", "te": "గ్యాస్"}},
	{ID: "travel", Icon: "🛵", Names: map[string]string{"en": "Travel", "hi": "यात्रा", "te": "ప్రయాణం"}},
	{ID: "rent", Icon: "🏠", Names: map[string]string{"en": "Rent", "hi": "किराया", "te": "ఇంటి అద్దె"}},
	{ID: "electricity", Icon: "⚡", Names: map[string]string{"en": "Electricity", "hi": "बिजली", "te": "కరెంట్"}},
	{ID: "internet", Icon: "📶", Names: map[string]string{"en": "Internet", "hi": "इंटरनेट", "te": "ఇంటర్నెట్"}},
	{ID: "education", Icon: "🎓", Names: map[string]string{"en": "Education", "hi": "शिक्षा", "te": "విద్య"}},
	{ID: "medical", Icon: "⚕", Names: map[string]string{"en": "Medical", "hi": "चिकित्सा", "te": "వైద్యం"}},
	{ID: "others", Icon: "📋", Names: map[string]string{"en": "Others", "hi": "अन्य", "te": "ఇతర"}},
}

// Catalog returns the fixed, ordered list of spending categories. The list is
// loaded once per process and never changes; callers get a copy so the shared
// entries cannot be reordered or replaced.
func Catalog() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

// CategoryByID looks up a catalog entry by id. The second return reports
// whether the id is part of the catalog; expense rows may reference ids
// outside it, referential integrity is deliberately loose.
func CategoryByID(id string) (Category, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
