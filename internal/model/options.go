package model

// SpecOptions lists the values offered for each specification field.
// They guide pickers in a UI; validation only requires a value to be present.
var SpecOptions = map[Category]map[string][]string{
	CategoryMobile: {
		"ram_size":      {"6GB", "8GB", "12GB"},
		"storage_size":  {"64GB", "128GB", "256GB"},
		"software_type": {"Android", "Ios"},
	},
	CategoryTelevision: {
		"display_size": {"32Inch", "44Inch", "55Inch"},
		"device_type":  {"Android", "LedSmart"},
	},
	CategoryClothing: {
		"cloth_type":   {"Saree", "Kurta", "Shirt", "Pant"},
		"cloth_size":   {"Small", "Medium", "Large", "ExtraLarge"},
		"cloth_color":  {"Red", "Blue", "Green"},
		"cloth_fabric": {"Cotton", "Polyster", "Silk"},
	},
}
