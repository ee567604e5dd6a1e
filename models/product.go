package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories and subcategories form a fixed set; anything else is
// rejected at validation time.
var (
	Categories    = []string{"Men", "Women", "Kids"}
	Subcategories = []string{"Casual", "Formal", "Traditional", "Sportswear"}
)

// ProductImages is either a flat ordered list of URLs or a per-color map of
// ordered lists. Exactly one of the two fields is set. Both shapes exist in
// stored data, so the type round-trips either form through BSON and JSON.
type ProductImages struct {
	Flat    []string            `bson:"-" json:"-"`
	ByColor map[string][]string `bson:"-" json:"-"`
}

// Resolve picks a display image: first flat entry, else the first entry under
// the requested color, else the first entry under the lowest color key.
func (pi ProductImages) Resolve(color string) (string, bool) {
	if len(pi.Flat) > 0 {
		return pi.Flat[0], true
	}
	if urls := pi.ByColor[color]; len(urls) > 0 {
		return urls[0], true
	}
	keys := make([]string, 0, len(pi.ByColor))
	for k := range pi.ByColor {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if urls := pi.ByColor[k]; len(urls) > 0 {
			return urls[0], true
		}
	}
	return "", false
}

func (pi ProductImages) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if pi.ByColor != nil {
		return bson.MarshalValue(pi.ByColor)
	}
	if pi.Flat == nil {
		return bson.MarshalValue([]string{})
	}
	return bson.MarshalValue(pi.Flat)
}

func (pi *ProductImages) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*pi = ProductImages{}
	switch t {
	case bsontype.Array:
		return bson.UnmarshalValue(t, data, &pi.Flat)
	case bsontype.EmbeddedDocument:
		return bson.UnmarshalValue(t, data, &pi.ByColor)
	case bsontype.Null:
		return nil
	default:
		return fmt.Errorf("images: unsupported bson type %s", t)
	}
}

func (pi ProductImages) MarshalJSON() ([]byte, error) {
	if pi.ByColor != nil {
		return json.Marshal(pi.ByColor)
	}
	if pi.Flat == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(pi.Flat)
}

func (pi *ProductImages) UnmarshalJSON(data []byte) error {
	*pi = ProductImages{}
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return json.Unmarshal(data, &pi.Flat)
		default:
			return json.Unmarshal(data, &pi.ByColor)
		}
	}
	return nil
}

// Review is one user's rating of a product. One review per user per product.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	DiscountPrice float64            `bson:"discountPrice" json:"discountPrice"`
	Images        ProductImages      `bson:"images" json:"images"`
	Category      string             `bson:"category" json:"category"`
	Subcategory   string             `bson:"subcategory" json:"subcategory"`
	Sizes         []string           `bson:"sizes" json:"sizes"`
	Colors        []string           `bson:"colors" json:"colors"`
	Stock         int                `bson:"stock" json:"stock"`
	IsBestseller  bool               `bson:"isBestseller" json:"isBestseller"`
	Ratings       float64            `bson:"ratings" json:"ratings"`
	NumReviews    int                `bson:"numReviews" json:"numReviews"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	Brand         string             `bson:"brand" json:"brand"`
	Material      string             `bson:"material" json:"material"`
	Tags          []string           `bson:"tags" json:"tags"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePrice is the unit price snapshotted into carts: the discount price
// when one is set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// RecomputeRatings refreshes the derived numReviews and mean rating fields
// from the review list.
func (p *Product) RecomputeRatings() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Ratings = 0
		return
	}
	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Ratings = sum / float64(p.NumReviews)
}
