package services

import (
	"github.com/shopspring/decimal"
	"github.com/tebele-dev/tailor-made-couture/models"
)

const unsplash = "https://images.unsplash.com/"

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pct(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func selection(id, name string, required bool, def string, options ...string) models.CustomProperty {
	return models.CustomProperty{
		ID:           id,
		Name:         name,
		Type:         models.PropertySelection,
		Required:     required,
		Options:      options,
		DefaultValue: def,
		Category:     models.CategoryDesign,
	}
}

func seedProducts() []models.ProductDetail {
	return []models.ProductDetail{
		{
			Product: models.Product{
				ID: "1", Name: "Classic Navy Suit", Price: price("599.99"),
				Image:    unsplash + "photo-1594938291221-94f18cbb5660?w=800&h=1000&fit=crop",
				Category: "Suits", Rating: 4.8,
			},
			Description: "A timeless navy suit tailored for confidence and comfort. Crafted from premium Italian wool with a classic fit that flatters any body type. Perfect for business meetings, formal events, or weddings.",
			Images: []string{
				unsplash + "photo-1594938291221-94f18cbb5660?w=800&h=1000&fit=crop",
				unsplash + "photo-1507679799987-c73779587ccf?w=800&h=1000&fit=crop",
			},
			Details: models.ProductDetails{Material: "100% Italian Wool", Color: "Navy Blue", Size: "Regular, Slim, Athletic", Care: "Dry clean only"},
		},
		{
			Product: models.Product{
				ID: "2", Name: "Custom Tailored Shirt", Price: price("149.99"),
				Image:    unsplash + "photo-1602810318383-e386cc2a3ccf?w=800&h=1000&fit=crop",
				Category: "Shirts", Rating: 4.9, IsCustom: true,
			},
			Description:  "Perfectly fitted shirt with premium cotton and customizable details. Choose from a variety of collar styles, cuff options, and fabric patterns to create a shirt that's uniquely yours.",
			Images:       []string{unsplash + "photo-1602810318383-e386cc2a3ccf?w=800&h=1000&fit=crop"},
			Details:      models.ProductDetails{Material: "100% Egyptian Cotton", Color: "White, Blue, Pink, Striped", Size: "S, M, L, XL, XXL", Care: "Machine wash cold, tumble dry low"},
			Measurements: []string{"Chest", "Waist", "Hips", "Shoulder Width", "Sleeve Length", "Neck Size"},
			CustomProperties: []models.CustomProperty{
				selection("prop_1", "Collar Style", true, "Classic", "Classic", "Button-Down", "Spread", "Mandarin"),
				selection("prop_2", "Cuff Style", true, "Single", "Single", "Double", "French"),
				selection("prop_3", "Pocket Style", false, "None", "None", "Classic", "Patched"),
			},
			FabricOptions: []models.FabricOption{
				{ID: "fabric_1", Name: "Egyptian Cotton", Category: models.FabricPrimary, PriceModifier: pct(0), Description: "Premium Egyptian cotton with superior softness", SwatchColor: "#ffffff"},
				{ID: "fabric_2", Name: "Pima Cotton", Category: models.FabricPrimary, PriceModifier: pct(15), Description: "Luxurious Pima cotton for enhanced comfort", SwatchColor: "#f0f0f0"},
			},
		},
		{
			Product: models.Product{
				ID: "3", Name: "Premium Wool Blazer", Price: price("449.99"),
				Image:    unsplash + "photo-1507679799987-c73779587ccf?w=800&h=1000&fit=crop",
				Category: "Blazers", Rating: 4.7,
			},
			Description: "Soft-shouldered blazer crafted from fine merino wool. Features a modern slim fit with classic styling elements that make it versatile for both professional and casual settings.",
			Images:      []string{unsplash + "photo-1507679799987-c73779587ccf?w=800&h=1000&fit=crop"},
			Details:     models.ProductDetails{Material: "100% Merino Wool", Color: "Charcoal Gray", Size: "36R, 38R, 40R, 42R, 44R", Care: "Dry clean only"},
		},
		{
			Product: models.Product{
				ID: "4", Name: "Custom Wedding Suit", Price: price("899.99"),
				Image:    unsplash + "photo-1617127365659-c47fa864d8bc?w=800&h=1000&fit=crop",
				Category: "Suits", Rating: 5.0, IsCustom: true,
			},
			Description:  "Hand-finished suit with bespoke options for your big day. Every detail is customizable to ensure you look and feel your best on your wedding day.",
			Images:       []string{unsplash + "photo-1617127365659-c47fa864d8bc?w=800&h=1000&fit=crop"},
			Details:      models.ProductDetails{Material: "Premium Italian Wool Blend", Color: "Black, Navy, Charcoal, Ivory", Size: "Bespoke fit", Care: "Dry clean only"},
			Measurements: []string{"Chest", "Waist", "Hips", "Shoulder Width", "Sleeve Length", "Inseam", "Neck Size"},
			CustomProperties: []models.CustomProperty{
				selection("prop_4", "Lapel Style", true, "Notch", "Notch", "Peak", "Shawl"),
				selection("prop_5", "Button Style", true, "Single-Breasted", "Single-Breasted", "Double-Breasted"),
				{ID: "prop_6", Name: "Vest Included", Type: models.PropertyBoolean, DefaultValue: false, Category: models.CategoryDesign},
			},
			FabricOptions: []models.FabricOption{
				{ID: "fabric_3", Name: "Italian Wool", Category: models.FabricPrimary, PriceModifier: pct(0), Description: "Premium Italian wool with superior texture and drape", SwatchColor: "#2c3e50"},
				{ID: "fabric_4", Name: "Cashmere Blend", Category: models.FabricPrimary, PriceModifier: pct(25), Description: "Luxurious cashmere blend for ultimate comfort", SwatchColor: "#8b4513"},
			},
		},
		{
			Product: models.Product{
				ID: "5", Name: "Business Trousers", Price: price("179.99"),
				Image:    unsplash + "photo-1473966968600-fa801b869a1a?w=800&h=1000&fit=crop",
				Category: "Trousers", Rating: 4.6,
			},
			Description: "Wrinkle-resistant trousers with a clean, tapered silhouette. Made from a blend of wool and synthetic fibers for durability and comfort throughout the workday.",
			Images:      []string{unsplash + "photo-1473966968600-fa801b869a1a?w=800&h=1000&fit=crop"},
			Details:     models.ProductDetails{Material: "Wool/Polyester Blend", Color: "Black, Navy, Charcoal", Size: "30-32, 32-32, 34-32, 36-32, 38-32", Care: "Machine wash cold, tumble dry low"},
		},
		{
			Product: models.Product{
				ID: "6", Name: "Custom Evening Dress", Price: price("699.99"),
				Image:    unsplash + "photo-1566174053879-31528523f8ae?w=800&h=1000&fit=crop",
				Category: "Dresses", Rating: 4.9, IsCustom: true,
			},
			Description:  "Graceful evening dress with tailored fit and flowing drape. Perfect for galas, cocktail parties, or special occasions where you want to make a statement.",
			Images:       []string{unsplash + "photo-1566174053879-31528523f8ae?w=800&h=1000&fit=crop"},
			Details:      models.ProductDetails{Material: "Silk Chiffon and Satin", Color: "Black, Navy, Burgundy, Gold", Size: "Bespoke fit", Care: "Dry clean only"},
			Measurements: []string{"Bust", "Waist", "Hips", "Shoulder Width", "Sleeve Length", "Dress Length"},
			CustomProperties: []models.CustomProperty{
				selection("prop_7", "Neckline Style", true, "V-Neck", "V-Neck", "Sweetheart", "Off-the-Shoulder", "Halter"),
				selection("prop_8", "Sleeve Style", true, "Sleeveless", "Sleeveless", "Cap Sleeve", "Short Sleeve", "Long Sleeve"),
				selection("prop_9", "Back Design", false, "Closed", "Closed", "Open Back", "Keyhole"),
			},
			FabricOptions: []models.FabricOption{
				{ID: "fabric_5", Name: "Silk Chiffon", Category: models.FabricPrimary, PriceModifier: pct(0), Description: "Lightweight silk chiffon with beautiful drape", SwatchColor: "#ffffff"},
				{ID: "fabric_6", Name: "Satin", Category: models.FabricPrimary, PriceModifier: pct(20), Description: "Luxurious satin with elegant sheen", SwatchColor: "#ffd700"},
			},
		},
	}
}

// featuredOverrides are the shorter names the featured rail shows.
var featuredOverrides = []struct {
	id, name string
}{
	{"1", "Signature Navy Suit"},
	{"2", "Custom Shirt Collection"},
	{"3", "Premium Wool Blazer"},
	{"6", "Evening Dress"},
}

func seedFabricLibrary() []models.FabricOption {
	img := func(photo, extra string) string {
		return unsplash + photo + "?w=400&h=400&fit=crop" + extra
	}
	return []models.FabricOption{
		{ID: "fabric_1", Name: "Italian Wool", Category: models.FabricPrimary, Image: img("photo-1594938291221-94f18cbb5660", ""), PriceModifier: pct(0), Description: "Premium Italian wool with superior texture and drape", SwatchColor: "#2c3e50"},
		{ID: "fabric_2", Name: "Cashmere Blend", Category: models.FabricPrimary, Image: img("photo-1594938291221-94f18cbb5660", "&grayscale"), PriceModifier: pct(25), Description: "Luxurious cashmere blend for ultimate comfort", SwatchColor: "#8b4513"},
		{ID: "fabric_3", Name: "Linen", Category: models.FabricPrimary, Image: img("photo-1594938291221-94f18cbb5660", "&sat=-100"), PriceModifier: pct(-10), Description: "Lightweight linen perfect for summer wear", SwatchColor: "#f5deb3"},
		{ID: "fabric_4", Name: "Silk Lining", Category: models.FabricSecondary, Image: img("photo-1602810318383-e386cc2a3ccf", ""), PriceModifier: pct(15), Description: "Smooth silk lining for enhanced comfort", SwatchColor: "#fff0f5"},
		{ID: "fabric_5", Name: "Polyester Blend", Category: models.FabricSecondary, Image: img("photo-1602810318383-e386cc2a3ccf", "&grayscale"), PriceModifier: pct(0), Description: "Durable polyester blend lining", SwatchColor: "#d3d3d3"},
		{ID: "fabric_6", Name: "Buttonhole Thread", Category: models.FabricTertiary, Image: img("photo-1507679799987-c73779587ccf", ""), PriceModifier: pct(5), Description: "Premium thread for buttonholes", SwatchColor: "#000000"},
		{ID: "fabric_7", Name: "Contrast Fabric", Category: models.FabricTertiary, Image: img("photo-1507679799987-c73779587ccf", "&grayscale"), PriceModifier: pct(10), Description: "Contrast fabric for detailing", SwatchColor: "#dc143c"},
	}
}

var inventorySuppliers = []string{"Premium Textiles Co.", "Luxury Fabrics Ltd.", "Elite Materials Inc."}
