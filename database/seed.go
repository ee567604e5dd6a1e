package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
)

// SeedProducts inserts a starter catalog when the products collection is
// empty. Safe to call on every startup.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	count, err := db.Collection("products").CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := store.NewMongoProductStore(db)
	for i := range seedCatalog {
		if err := products.Insert(ctx, &seedCatalog[i]); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d products", len(seedCatalog))
	return nil
}

var seedCatalog = []models.Product{
	{
		Name:          "Classic Black T-Shirt",
		Description:   "Premium cotton t-shirt perfect for everyday wear. Breathable and comfortable.",
		Price:         999,
		DiscountPrice: 799,
		Images: models.ProductImages{ByColor: map[string][]string{
			"Black": {"https://images.pexels.com/photos/8532616/pexels-photo-8532616.jpeg"},
			"White": {"https://images.pexels.com/photos/12650794/pexels-photo-12650794.jpeg"},
		}},
		Category:     "Men",
		Subcategory:  "Casual",
		Sizes:        []string{"S", "M", "L", "XL", "XXL"},
		Colors:       []string{"Black", "White"},
		Stock:        100,
		Brand:        "StyleHub",
		Material:     "100% Cotton",
		IsBestseller: true,
		Tags:         []string{"t-shirt", "cotton", "basics"},
		Reviews:      []models.Review{},
	},
	{
		Name:        "Formal Slim Fit Shirt",
		Description: "Wrinkle-resistant slim fit shirt for office and occasions.",
		Price:       1899,
		Images: models.ProductImages{Flat: []string{
			"https://images.pexels.com/photos/297933/pexels-photo-297933.jpeg",
		}},
		Category:    "Men",
		Subcategory: "Formal",
		Sizes:       []string{"M", "L", "XL"},
		Colors:      []string{"Blue", "White"},
		Stock:       60,
		Brand:       "StyleHub",
		Material:    "Cotton Blend",
		Tags:        []string{"shirt", "office"},
		Reviews:     []models.Review{},
	},
	{
		Name:          "Floral Summer Dress",
		Description:   "Lightweight floral dress with a relaxed silhouette.",
		Price:         2499,
		DiscountPrice: 1999,
		Images: models.ProductImages{ByColor: map[string][]string{
			"Red":    {"https://images.pexels.com/photos/985635/pexels-photo-985635.jpeg"},
			"Yellow": {"https://images.pexels.com/photos/972995/pexels-photo-972995.jpeg"},
		}},
		Category:     "Women",
		Subcategory:  "Casual",
		Sizes:        []string{"S", "M", "L"},
		Colors:       []string{"Red", "Yellow"},
		Stock:        45,
		Brand:        "StyleHub",
		Material:     "Rayon",
		IsBestseller: true,
		Tags:         []string{"dress", "summer", "floral"},
		Reviews:      []models.Review{},
	},
	{
		Name:        "Kids Sports Tracksuit",
		Description: "Durable two-piece tracksuit for active kids.",
		Price:       1499,
		Images: models.ProductImages{Flat: []string{
			"https://images.pexels.com/photos/1620760/pexels-photo-1620760.jpeg",
		}},
		Category:    "Kids",
		Subcategory: "Sportswear",
		Sizes:       []string{"4-5Y", "6-7Y", "8-9Y"},
		Colors:      []string{"Navy", "Green"},
		Stock:       80,
		Brand:       "StyleHub",
		Material:    "Polyester",
		Tags:        []string{"kids", "tracksuit", "sports"},
		Reviews:     []models.Review{},
	},
}
