package catalog

import "github.com/shopspring/decimal"

// SeedItems returns the demo catalog the storefront starts with
func SeedItems() []Item {
	return []Item{
		{
			ID:          1,
			Title:       "Premium Noise-Canceling Headphones",
			Price:       decimal.RequireFromString("299.99"),
			Description: "Experience immersive sound with our latest noise-canceling technology. Perfect for travel and work.",
			Category:    CategoryElectronics,
			Image:       "https://picsum.photos/400/400?random=1",
			Rating:      Rating{Rate: 4.8, Count: 120},
		},
		{
			ID:          2,
			Title:       "Ergonomic Office Chair",
			Price:       decimal.RequireFromString("159.50"),
			Description: "Designed for comfort and support during long work hours. Adjustable height and lumbar support.",
			Category:    CategoryFurniture,
			Image:       "https://picsum.photos/400/400?random=2",
			Rating:      Rating{Rate: 4.5, Count: 85},
		},
		{
			ID:          3,
			Title:       "Minimalist Analog Watch",
			Price:       decimal.RequireFromString("129.00"),
			Description: "A timeless classic featuring a genuine leather strap and a scratch-resistant glass face.",
			Category:    CategoryAccessories,
			Image:       "https://picsum.photos/400/400?random=3",
			Rating:      Rating{Rate: 4.6, Count: 210},
		},
		{
			ID:          4,
			Title:       "Smart Fitness Tracker",
			Price:       decimal.RequireFromString("89.99"),
			Description: "Track your steps, heart rate, and sleep quality. Water-resistant and 7-day battery life.",
			Category:    CategoryElectronics,
			Image:       "https://picsum.photos/400/400?random=4",
			Rating:      Rating{Rate: 4.2, Count: 340},
		},
		{
			ID:          5,
			Title:       "Organic Cotton T-Shirt",
			Price:       decimal.RequireFromString("24.99"),
			Description: "Soft, breathable, and eco-friendly. Available in multiple earthy tones.",
			Category:    CategoryClothing,
			Image:       "https://picsum.photos/400/400?random=5",
			Rating:      Rating{Rate: 4.7, Count: 500},
		},
		{
			ID:          6,
			Title:       "Professional DSLR Camera",
			Price:       decimal.RequireFromString("1299.00"),
			Description: "Capture stunning photos and 4K video. Includes 18-55mm lens kit.",
			Category:    CategoryElectronics,
			Image:       "https://picsum.photos/400/400?random=6",
			Rating:      Rating{Rate: 4.9, Count: 60},
		},
		{
			ID:          7,
			Title:       "Ceramic Coffee Pour-Over Set",
			Price:       decimal.RequireFromString("45.00"),
			Description: "Brew the perfect cup of coffee at home with this artisanal ceramic set.",
			Category:    CategoryHome,
			Image:       "https://picsum.photos/400/400?random=7",
			Rating:      Rating{Rate: 4.8, Count: 150},
		},
		{
			ID:          8,
			Title:       "Wireless Mechanical Keyboard",
			Price:       decimal.RequireFromString("110.00"),
			Description: "Tactile switches with customizable RGB lighting. Connects via Bluetooth or USB-C.",
			Category:    CategoryElectronics,
			Image:       "https://picsum.photos/400/400?random=8",
			Rating:      Rating{Rate: 4.6, Count: 180},
		},
		{
			ID:          9,
			Title:       "Travel Backpack Water Resistant",
			Price:       decimal.RequireFromString("65.00"),
			Description: "Spacious compartments with a laptop sleeve. Ideal for hiking or daily commute.",
			Category:    CategoryAccessories,
			Image:       "https://picsum.photos/400/400?random=9",
			Rating:      Rating{Rate: 4.4, Count: 300},
		},
		{
			ID:          10,
			Title:       "Aromatherapy Diffuser",
			Price:       decimal.RequireFromString("35.99"),
			Description: "Create a calming atmosphere with essential oils. LED mood lighting included.",
			Category:    CategoryHome,
			Image:       "https://picsum.photos/400/400?random=10",
			Rating:      Rating{Rate: 4.3, Count: 120},
		},
	}
}
