package service

import "storefront/internal/model"

const placeholderImage = "/api/placeholder/400/400"

// DefaultCategories returns the fixed category list.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: "planners", Name: "Planners & Organizers", Icon: "📅"},
		{ID: "stickers", Name: "Stickers & Labels", Icon: "🏷️"},
		{ID: "cards", Name: "Greeting Cards", Icon: "💌"},
		{ID: "wall-art", Name: "Wall Art Prints", Icon: "🖼️"},
		{ID: "party", Name: "Party Printables", Icon: "🎉"},
		{ID: "educational", Name: "Educational Materials", Icon: "📚"},
	}
}

// DefaultCatalog returns the built-in catalogue loaded on every start.
// Prices are in INR.
func DefaultCatalog() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Pastel Dream Weekly Planner",
			Description: "Beautiful weekly planner with soft pastel colors and gold accents. Perfect for organizing your week in style.",
			Price:       999,
			Category:    "planners",
			Image:       placeholderImage,
			Tags:        []string{"planner", "weekly", "pastel", "organization"},
			Featured:    true,
			InStock:     true,
		},
		{
			ID:          "2",
			Name:        "Golden Butterfly Sticker Set",
			Description: "Elegant butterfly stickers with golden foil effect. Set of 24 premium stickers.",
			Price:       699,
			Category:    "stickers",
			Image:       placeholderImage,
			Tags:        []string{"stickers", "butterfly", "golden", "decorative"},
			Featured:    true,
			InStock:     true,
		},
		{
			ID:          "3",
			Name:        "Pink Floral Birthday Card",
			Description: "Cute birthday card with pink floral design. Includes matching envelope template.",
			Price:       399,
			Category:    "cards",
			Image:       placeholderImage,
			Tags:        []string{"birthday", "card", "floral", "pink"},
			Featured:    false,
			InStock:     true,
		},
		{
			ID:          "4",
			Name:        "Motivational Quote Wall Art",
			Description: "Inspiring wall art print with beautiful typography and soft color palette.",
			Price:       1299,
			Category:    "wall-art",
			Image:       placeholderImage,
			Tags:        []string{"wall art", "motivational", "typography", "decor"},
			Featured:    true,
			InStock:     true,
		},
		{
			ID:          "5",
			Name:        "Baby Shower Party Kit",
			Description: "Complete party printable kit with invitations, decorations, and games.",
			Price:       1999,
			Category:    "party",
			Image:       placeholderImage,
			Tags:        []string{"baby shower", "party", "kit", "decorations"},
			Featured:    false,
			InStock:     true,
		},
		{
			ID:          "6",
			Name:        "Alphabet Learning Cards",
			Description: "Educational alphabet cards with cute illustrations for early learning.",
			Price:       799,
			Category:    "educational",
			Image:       placeholderImage,
			Tags:        []string{"educational", "alphabet", "learning", "kids"},
			Featured:    false,
			InStock:     true,
		},
	}
}

// DefaultCurrencies returns the display currencies with their default rates
// relative to INR.
func DefaultCurrencies() []model.Currency {
	return []model.Currency{
		{Code: "INR", Symbol: "₹", Name: "Indian Rupee", ExchangeRate: 1, Decimals: 0},
		{Code: "USD", Symbol: "$", Name: "US Dollar", ExchangeRate: 0.011, Decimals: 2},
		{Code: "EUR", Symbol: "€", Name: "Euro", ExchangeRate: 0.0097, Decimals: 2},
		{Code: "GBP", Symbol: "£", Name: "British Pound", ExchangeRate: 0.0083, Decimals: 2},
		{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", ExchangeRate: 0.014, Decimals: 2},
		{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", ExchangeRate: 0.015, Decimals: 2},
		{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", ExchangeRate: 1.5, Decimals: 0},
	}
}
