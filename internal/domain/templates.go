package domain

// BuiltInTemplates ship with the application and cannot be deleted.
var BuiltInTemplates = []Template{
	{
		ID:          "builtin-flash-sale",
		Name:        "Flash Sale",
		Description: "High contrast sale banner with a bold price badge.",
		BuiltIn:     true,
		Request: CompositionRequest{
			AdType:        DefaultAdType,
			Header1:       "Flash Sale",
			Header2:       "Today only",
			Price:         "$49",
			SalePrice:     "$29",
			Cta:           "Shop Now",
			CreativeStyle: StyleBold,
			AdSizes:       []AspectRatio{"1:1", "9:16"},
			CTAStyle:      CTAStyle{TextColor: "#FFFFFF", BackgroundColor: "#E11D48", Padding: 14, CornerRadius: 24},
		},
	},
	{
		ID:          "builtin-product-launch",
		Name:        "Product Launch",
		Description: "Clean studio backdrop that leaves room for a product shot.",
		BuiltIn:     true,
		Request: CompositionRequest{
			AdType:        DefaultAdType,
			Header1:       "Meet the New Classic",
			Description:   "Crafted for everyday comfort.",
			Cta:           "Discover",
			CreativeStyle: StyleMinimalist,
			AdSizes:       []AspectRatio{"1:1", "4:5"},
			CTAStyle:      CTAStyle{TextColor: "#FFFFFF", BackgroundColor: "#000000", Padding: 12, CornerRadius: 8},
		},
	},
	{
		ID:          "builtin-luxury-event",
		Name:        "Luxury Event",
		Description: "Dark, cinematic look for premium invitations.",
		BuiltIn:     true,
		Request: CompositionRequest{
			AdType:        "Event Invitation",
			Header1:       "An Evening of Elegance",
			Header2:       "Reserve your seat",
			Cta:           "RSVP",
			CreativeStyle: StyleElegant,
			AdSizes:       []AspectRatio{"16:9"},
			CTAStyle:      CTAStyle{TextColor: "#000000", BackgroundColor: "#D4AF37", Padding: 12, CornerRadius: 4},
		},
	},
}

// FindBuiltInTemplate looks up a built-in template by id.
func FindBuiltInTemplate(id string) (Template, bool) {
	for _, t := range BuiltInTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
