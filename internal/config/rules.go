package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is one allowed Main Category with its subcategories.
type Category struct {
	Main          string   `yaml:"main"`
	Subcategories []string `yaml:"subcategories"`
}

// Rules is the category taxonomy injected into the classifier prompt.
type Rules struct {
	Categories []Category `yaml:"categories"`
}

// DefaultRules is the built-in household taxonomy, used when no rules file
// is configured.
var DefaultRules = Rules{Categories: []Category{
	{"Groceries", []string{"Supermarket", "International Grocery", "Drugstore"}},
	{"Dining Out", []string{"Restaurant", "Fast Food", "Cafe", "Delivery"}},
	{"Car", []string{"Fuel", "Parking", "Car Wash", "Maintenance", "Car Insurance"}},
	{"Health", []string{"Pharmacy", "Health Insurance", "Private Insurance"}},
	{"Housing", []string{"Rent", "Gas", "Electricity", "Internet & Phone", "Broadcast Fee (GEZ)", "Furniture", "Renovation"}},
	{"Savings", []string{"Investments", "Savings Account"}},
	{"Shopping", []string{"Clothing", "Electronics", "Online Shopping", "Household", "Other Shopping"}},
	{"Leisure", []string{"Cinema", "Subscription (e.g. Netflix)", "Travel", "Games", "Sports"}},
	{"Baby", []string{"Kita", "Baby Supplies", "Toys"}},
	{"Lifestyle", []string{"Mobile", "Hairdresser", "Gym Membership", "Other Lifestyle", "Education"}},
	{"Banking", []string{"Bank Fees", "Credit Card Statement", "Credit", "Self Transfer"}},
	{"Income", []string{"Salary", "Other Income", "Child Benefit", "Refunds", "Social Benefits"}},
	{"Government", []string{"Taxes", "Social Benefits", "Pension"}},
	{"Mobility", []string{"Bicycle", "Public Transport", "Shared Mobility", "Taxi"}},
}}

// LoadRules reads a YAML taxonomy file; an empty path yields DefaultRules.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("config: reading rules file: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("config: parsing rules file: %w", err)
	}
	if len(rules.Categories) == 0 {
		return DefaultRules, nil
	}
	return rules, nil
}

// PromptLines renders the taxonomy as the "Main → Sub, Sub" list the
// classifier prompt embeds.
func (r Rules) PromptLines() string {
	var b strings.Builder
	for _, cat := range r.Categories {
		fmt.Fprintf(&b, "   - %s → %s\n", cat.Main, strings.Join(cat.Subcategories, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
