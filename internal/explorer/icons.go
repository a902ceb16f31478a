package explorer

import "strings"

// MarkerIcon identifies the glyph a vendor marker shows.
type MarkerIcon string

const (
	IconNoodle    MarkerIcon = "noodle"
	IconDumpling  MarkerIcon = "dumpling"
	IconMeat      MarkerIcon = "meat"
	IconSeafood   MarkerIcon = "seafood"
	IconDessert   MarkerIcon = "dessert"
	IconBeverage  MarkerIcon = "beverage"
	IconVegetable MarkerIcon = "vegetable"
	IconRice      MarkerIcon = "rice"
	IconFood      MarkerIcon = "food"
	IconMarket    MarkerIcon = "market"
)

// iconRules is ordered; the first category whose keyword list matches wins.
var iconRules = []struct {
	icon     MarkerIcon
	keywords []string
}{
	{IconNoodle, []string{"soup", "noodle", "ramen", "vermicelli", "mee sua"}},
	{IconDumpling, []string{"dumpling", "bao", "bun", "wonton", "gyoza"}},
	{IconMeat, []string{"meat", "chicken", "pork", "beef", "duck", "sausage"}},
	{IconSeafood, []string{"seafood", "fish", "oyster", "squid", "shrimp", "crab"}},
	{IconDessert, []string{"dessert", "sweet", "ice", "cake", "tofu pudding", "mochi"}},
	{IconBeverage, []string{"beverage", "tea", "juice", "drink", "coffee"}},
	{IconVegetable, []string{"vegetable", "veggie", "tofu", "corn"}},
	{IconRice, []string{"rice", "congee", "porridge"}},
}

// IconForVendor classifies a vendor by its first specialty. First keyword
// match wins; anything unmatched falls back to the generic food icon.
func IconForVendor(specialties []string) MarkerIcon {
	if len(specialties) == 0 {
		return IconFood
	}

	specialty := strings.ToLower(specialties[0])
	for _, rule := range iconRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(specialty, keyword) {
				return rule.icon
			}
		}
	}
	return IconFood
}
