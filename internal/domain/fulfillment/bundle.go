package fulfillment

import "strings"

const (
	pouchSuffix = "(pouch)"
	jarSuffix   = "(jar)"
)

// BundleDefinition maps a sellable bundle to the components packed for it.
// HasVariants marks bundles sold in both jar and pouch packaging; their
// component names get the packaging appended.
type BundleDefinition struct {
	Name        string
	Components  []string
	HasVariants bool
}

// BundleInfo is the result of resolving a line item against the catalog
type BundleInfo struct {
	IsBundle   bool
	BundleName string
	Components []string
}

// BundleCatalog is an immutable, ordered set of bundle definitions.
// It is safe for concurrent use.
type BundleCatalog struct {
	bundles []BundleDefinition
}

// NewBundleCatalog copies defs into a new catalog. Matching follows the order
// of defs.
func NewBundleCatalog(defs []BundleDefinition) *BundleCatalog {
	bundles := make([]BundleDefinition, len(defs))
	for i, def := range defs {
		bundles[i] = BundleDefinition{
			Name:        def.Name,
			Components:  append([]string(nil), def.Components...),
			HasVariants: def.HasVariants,
		}
	}
	return &BundleCatalog{bundles: bundles}
}

// Len returns the number of bundle definitions
func (c *BundleCatalog) Len() int {
	return len(c.bundles)
}

// Resolve finds the first bundle whose name is contained in title. For
// variant-aware bundles each component is suffixed with "(pouch)" when the
// variant title mentions pouch and "(jar)" otherwise.
// A missing variant title counts as jar, so components are always suffixed.
//
// Containment is a plain substring check, so a bundle name that is itself a
// substring of another bundle's title can shadow it; order the catalog
// accordingly.
func (c *BundleCatalog) Resolve(title, variantTitle string) BundleInfo {
	if c == nil {
		return BundleInfo{}
	}
	for _, bundle := range c.bundles {
		if !strings.Contains(title, bundle.Name) {
			continue
		}
		components := make([]string, len(bundle.Components))
		copy(components, bundle.Components)
		if bundle.HasVariants {
			suffix := jarSuffix
			if containsFold(variantTitle, "pouch") {
				suffix = pouchSuffix
			}
			for i, component := range components {
				components[i] = component + " " + suffix
			}
		}
		return BundleInfo{
			IsBundle:   true,
			BundleName: bundle.Name,
			Components: components,
		}
	}
	return BundleInfo{}
}

// DefaultBundles is the shop's bundle table
var DefaultBundles = []BundleDefinition{
	{
		Name: "Indian Cooking Essentials Kit",
		Components: []string{
			"Turmeric Powder",
			"Garam Masala",
			"Red Chilli Powder",
			"Jeera",
			"Dhana Jeera Powder",
		},
		HasVariants: true,
	},
	{
		Name: "Indian Spice Box (with 7 Essential Spices)",
		Components: []string{
			"Red Chilli Powder (55g) (pouch)",
			"Turmeric Powder (65g) (pouch)",
			"Cloves (50g) (pouch)",
			"Jeera (Cumin Seeds) (55g) (pouch)",
			"Dhana Jeera (Cumin Coriander Powder) (50g) (pouch)",
			"Garam Masala (50g) (pouch)",
			"Cardamom Pods (50g) (pouch)",
			"Traditional spoon",
		},
	},
	{
		Name: "4-Pack: Chicken Curry Spice Mix Set",
		Components: []string{
			"Butter Chicken Spice Mix - Jar (70g)",
			"Tandoori Chicken Spice Mix - Jar (60g)",
			"Biryani Spice Mix - Jar (70g)",
			"Chicken Tikka Masala Spice Mix - Jar (70g)",
		},
	},
	{
		Name: "4-Pack: Whole Spices Set",
		Components: []string{
			"Cardamom Pods (50g Jar)",
			"Kasoori Methi (Dried Fenugreek Leaves) (10g Jar)",
			"Cloves (40g Jar)",
			"Jeera (Cumin Seeds) (55g Jar)",
		},
	},
	{
		Name: "8-Pack: Meat Feast Spice Gift Set",
		Components: []string{
			"Butter Chicken Spice Mix - Jar (70g Jar)",
			"Tandoori Chicken Spice Mix - Jar (60g Jar)",
			"Biryani Spice Mix - Jar (70g Jar)",
			"Chicken Tikka Masala Spice Mix (70g Jar)",
			"Garam Masala (50g Jar)",
			"Kashmiri Chilli Powder (50g Jar)",
			"Kasoori Methi - Dried Fenugreek Leaves (10g Jar)",
			"Turmeric Powder (65g Jar)",
		},
	},
}

// DefaultBundleCatalog builds the catalog from DefaultBundles
func DefaultBundleCatalog() *BundleCatalog {
	return NewBundleCatalog(DefaultBundles)
}
