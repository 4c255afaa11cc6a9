package store

// Built-in measurement field templates per clothing type, used when the
// measurement field policy is "fixed-templates". The "other" type has no
// template; its fields come from the custom vocabulary and its display name
// from the measurement's customType.
var builtinTemplates = map[string][]Field{
	"shirt": {
		{Key: "chest", Label: "Chest"},
		{Key: "waist", Label: "Waist"},
		{Key: "shoulder", Label: "Shoulder"},
		{Key: "sleeve_length", Label: "Sleeve Length"},
		{Key: "shirt_length", Label: "Shirt Length"},
		{Key: "neck", Label: "Neck"},
	},
	"pant": {
		{Key: "waist", Label: "Waist"},
		{Key: "hip", Label: "Hip"},
		{Key: "inseam", Label: "Inseam"},
		{Key: "outseam", Label: "Outseam"},
		{Key: "thigh", Label: "Thigh"},
		{Key: "bottom", Label: "Bottom"},
	},
	"suit": {
		{Key: "chest", Label: "Chest"},
		{Key: "waist", Label: "Waist"},
		{Key: "shoulder", Label: "Shoulder"},
		{Key: "sleeve_length", Label: "Sleeve Length"},
		{Key: "jacket_length", Label: "Jacket Length"},
		{Key: "trouser_waist", Label: "Trouser Waist"},
		{Key: "inseam", Label: "Inseam"},
	},
	"dress": {
		{Key: "bust", Label: "Bust"},
		{Key: "waist", Label: "Waist"},
		{Key: "hip", Label: "Hip"},
		{Key: "dress_length", Label: "Dress Length"},
		{Key: "shoulder", Label: "Shoulder"},
		{Key: "sleeve_length", Label: "Sleeve Length"},
	},
	"other": {},
}

// ClothingTypes lists the types accepted under the fixed-templates policy.
var ClothingTypes = []string{"shirt", "pant", "suit", "dress", "other"}

// TemplateFor returns the built-in field set for a clothing type.
func TemplateFor(clothingType string) []Field {
	fields, ok := builtinTemplates[clothingType]
	if !ok {
		return nil
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}
