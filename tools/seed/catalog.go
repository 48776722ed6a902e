package main

import (
	"time"

	"github.com/Atlas00000/productvisualizer/models"
)

// sampleProducts is the starter catalog.
func sampleProducts(now time.Time) []models.Product {
	products := []models.Product{
		{
			Name:        "Modern Chair",
			Description: "A comfortable and stylish modern chair with customizable colors and materials",
			BasePrice:   299,
			ModelURL:    "/assets/models/chair.gltf",
			CustomizationOptions: models.CustomizationOptions{
				Colors: []models.ColorOption{
					{Name: "Black", Hex: "#000000", Price: 0},
					{Name: "White", Hex: "#ffffff", Price: 0},
					{Name: "Brown", Hex: "#8B4513", Price: 25},
					{Name: "Blue", Hex: "#1e40af", Price: 30},
					{Name: "Red", Hex: "#dc2626", Price: 35},
				},
				Materials: []models.MaterialOption{
					{Name: "Fabric", TextureURL: "/assets/textures/fabric.jpg", Price: 0},
					{Name: "Leather", TextureURL: "/assets/textures/leather.jpg", Price: 50},
					{Name: "Mesh", TextureURL: "/assets/textures/mesh.jpg", Price: 25},
					{Name: "Velvet", TextureURL: "/assets/textures/velvet.jpg", Price: 40},
				},
				Components: []models.ComponentOption{
					{Name: "Standard Legs", ModelURL: "/assets/components/standard-legs.gltf", Price: 0},
					{Name: "Metal Legs", ModelURL: "/assets/components/metal-legs.gltf", Price: 30},
					{Name: "Wooden Legs", ModelURL: "/assets/components/wooden-legs.gltf", Price: 45},
				},
			},
		},
		{
			Name:        "Office Lamp",
			Description: "Adjustable desk lamp with multiple color temperature options",
			BasePrice:   149,
			ModelURL:    "/assets/models/lamp.gltf",
			CustomizationOptions: models.CustomizationOptions{
				Colors: []models.ColorOption{
					{Name: "Black", Hex: "#000000", Price: 0},
					{Name: "White", Hex: "#ffffff", Price: 0},
					{Name: "Silver", Hex: "#c0c0c0", Price: 20},
					{Name: "Gold", Hex: "#ffd700", Price: 35},
				},
				Materials: []models.MaterialOption{
					{Name: "Metal", TextureURL: "/assets/textures/metal.jpg", Price: 0},
					{Name: "Plastic", TextureURL: "/assets/textures/plastic.jpg", Price: -10},
					{Name: "Glass", TextureURL: "/assets/textures/glass.jpg", Price: 25},
				},
				Components: []models.ComponentOption{
					{Name: "Standard Shade", ModelURL: "/assets/components/standard-shade.gltf", Price: 0},
					{Name: "Modern Shade", ModelURL: "/assets/components/modern-shade.gltf", Price: 20},
					{Name: "Vintage Shade", ModelURL: "/assets/components/vintage-shade.gltf", Price: 30},
				},
			},
		},
		{
			Name:        "Coffee Table",
			Description: "Elegant coffee table with customizable surface and legs",
			BasePrice:   399,
			ModelURL:    "/assets/models/table.gltf",
			CustomizationOptions: models.CustomizationOptions{
				Colors: []models.ColorOption{
					{Name: "Oak", Hex: "#8B4513", Price: 0},
					{Name: "Walnut", Hex: "#5C4033", Price: 50},
					{Name: "Mahogany", Hex: "#4E2728", Price: 75},
					{Name: "White", Hex: "#ffffff", Price: 25},
				},
				Materials: []models.MaterialOption{
					{Name: "Wood", TextureURL: "/assets/textures/wood.jpg", Price: 0},
					{Name: "Glass", TextureURL: "/assets/textures/glass.jpg", Price: 40},
					{Name: "Marble", TextureURL: "/assets/textures/marble.jpg", Price: 100},
				},
				Components: []models.ComponentOption{
					{Name: "Standard Legs", ModelURL: "/assets/components/standard-legs.gltf", Price: 0},
					{Name: "Tapered Legs", ModelURL: "/assets/components/tapered-legs.gltf", Price: 30},
					{Name: "Metal Legs", ModelURL: "/assets/components/metal-legs.gltf", Price: 45},
				},
			},
		},
	}
	for i := range products {
		products[i].IsActive = true
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
	}
	return products
}
