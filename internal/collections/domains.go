package collections

// DomainDict maps a coarse semantic domain to representative keywords.
// A domain applies to a token set when at least one keyword, after
// normalization, is present in the set.
type DomainDict map[string][]string

// CategoryDomains relates item categories and purchase intents by
// subject area.
var CategoryDomains = DomainDict{
	"food":             {"food", "snack", "grocery", "bread", "cereal", "pasta", "rice", "sauce", "soup", "fruit", "vegetable", "meat", "frozen", "canned"},
	"drink":            {"drink", "beverage", "soda", "juice", "coffee", "tea", "water", "beer", "wine"},
	"cleaning":         {"cleaning", "cleaner", "detergent", "soap", "bleach", "wipe", "sponge", "disinfectant", "mop", "broom"},
	"bathroom":         {"bathroom", "toilet", "shampoo", "conditioner", "toothpaste", "toothbrush", "towel", "tissue"},
	"personal_care":    {"deodorant", "razor", "lotion", "cosmetic", "makeup", "skincare", "sunscreen", "grooming"},
	"health":           {"health", "medicine", "vitamin", "supplement", "bandage", "aspirin", "prescription", "thermometer"},
	"tools":            {"tool", "hammer", "screwdriver", "wrench", "drill", "saw", "plier", "toolbox", "level", "clamp"},
	"home_improvement": {"paint", "roller", "primer", "nail", "screw", "bolt", "lumber", "caulk", "sandpaper", "hardware", "improvement", "tape"},
	"office":           {"office", "pen", "pencil", "paper", "stapler", "notebook", "folder", "printer", "ink", "envelope"},
	"electronics":      {"electronic", "battery", "rechargeable", "charger", "cable", "adapter", "phone", "laptop", "computer", "headphone", "bulb"},
	"baby":             {"baby", "diaper", "formula", "pacifier", "stroller", "onesie"},
	"pet":              {"pet", "dog", "cat", "litter", "leash", "treat", "kibble"},
	"kitchen":          {"kitchen", "pan", "pot", "knife", "utensil", "spatula", "dish", "plate", "cup", "mug", "foil", "blender"},
	"laundry":          {"laundry", "softener", "dryer", "stain", "hanger", "iron"},
	"clothing":         {"clothing", "shirt", "pant", "sock", "jacket", "shoe", "hat", "glove", "belt"},
}

// LocationDomains relates storage places by area of the home.
var LocationDomains = DomainDict{
	"kitchen":  {"kitchen", "counter", "cabinet", "cupboard"},
	"pantry":   {"pantry"},
	"fridge":   {"fridge", "refrigerator"},
	"freezer":  {"freezer"},
	"bathroom": {"bathroom", "shower", "vanity", "medicine"},
	"bedroom":  {"bedroom", "dresser", "nightstand"},
	"closet":   {"closet", "wardrobe"},
	"laundry":  {"laundry", "washer", "dryer"},
	"garage":   {"garage", "workbench", "toolbox", "shed"},
	"storage":  {"storage", "basement", "attic", "bin", "shelf"},
	"office":   {"office", "desk", "drawer", "study"},
}

// DomainsForTokens returns the set of domains whose keywords intersect
// the given token set. Iteration order of the result is unspecified.
func DomainsForTokens(tokens map[string]bool, dict DomainDict) map[string]bool {
	domains := make(map[string]bool)
	for domain, keywords := range dict {
		for _, kw := range keywords {
			if tokens[NormalizeToken(kw)] {
				domains[domain] = true
				break
			}
		}
	}
	return domains
}
