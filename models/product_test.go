package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductImages_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		images ProductImages
		color  string
		want   string
		ok     bool
	}{
		{
			name:   "flat wins even when a color is requested",
			images: ProductImages{Flat: []string{"flat-1.jpg", "flat-2.jpg"}},
			color:  "Black",
			want:   "flat-1.jpg",
			ok:     true,
		},
		{
			name: "requested color",
			images: ProductImages{ByColor: map[string][]string{
				"Black": {"black.jpg"},
				"White": {"white.jpg"},
			}},
			color: "White",
			want:  "white.jpg",
			ok:    true,
		},
		{
			name: "unknown color falls back to lowest key",
			images: ProductImages{ByColor: map[string][]string{
				"White": {"white.jpg"},
				"Black": {"black.jpg"},
			}},
			color: "Red",
			want:  "black.jpg",
			ok:    true,
		},
		{
			name: "empty url lists are skipped",
			images: ProductImages{ByColor: map[string][]string{
				"Black": {},
				"White": {"white.jpg"},
			}},
			color: "Red",
			want:  "white.jpg",
			ok:    true,
		},
		{
			name:   "nothing to resolve",
			images: ProductImages{},
			color:  "Black",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.images.Resolve(tt.color)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductImages_JSON(t *testing.T) {
	t.Run("flat form", func(t *testing.T) {
		data, err := json.Marshal(ProductImages{Flat: []string{"a.jpg", "b.jpg"}})
		require.NoError(t, err)
		assert.JSONEq(t, `["a.jpg","b.jpg"]`, string(data))

		var pi ProductImages
		require.NoError(t, json.Unmarshal(data, &pi))
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, pi.Flat)
		assert.Nil(t, pi.ByColor)
	})

	t.Run("color map form", func(t *testing.T) {
		data, err := json.Marshal(ProductImages{ByColor: map[string][]string{"Black": {"a.jpg"}}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"Black":["a.jpg"]}`, string(data))

		var pi ProductImages
		require.NoError(t, json.Unmarshal(data, &pi))
		assert.Nil(t, pi.Flat)
		assert.Equal(t, map[string][]string{"Black": {"a.jpg"}}, pi.ByColor)
	})

	t.Run("empty marshals as an array", func(t *testing.T) {
		data, err := json.Marshal(ProductImages{})
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("leading whitespace", func(t *testing.T) {
		var pi ProductImages
		require.NoError(t, json.Unmarshal([]byte("  [\"a.jpg\"]"), &pi))
		assert.Equal(t, []string{"a.jpg"}, pi.Flat)
	})
}

func TestProductImages_BSON(t *testing.T) {
	type doc struct {
		Images ProductImages `bson:"images"`
	}

	t.Run("flat form", func(t *testing.T) {
		data, err := bson.Marshal(doc{Images: ProductImages{Flat: []string{"a.jpg"}}})
		require.NoError(t, err)

		var out doc
		require.NoError(t, bson.Unmarshal(data, &out))
		assert.Equal(t, []string{"a.jpg"}, out.Images.Flat)
		assert.Nil(t, out.Images.ByColor)
	})

	t.Run("color map form", func(t *testing.T) {
		data, err := bson.Marshal(doc{Images: ProductImages{ByColor: map[string][]string{"Black": {"a.jpg"}}}})
		require.NoError(t, err)

		var out doc
		require.NoError(t, bson.Unmarshal(data, &out))
		assert.Nil(t, out.Images.Flat)
		assert.Equal(t, map[string][]string{"Black": {"a.jpg"}}, out.Images.ByColor)
	})
}

func TestProduct_EffectivePrice(t *testing.T) {
	p := Product{Price: 999}
	assert.Equal(t, 999.0, p.EffectivePrice())

	p.DiscountPrice = 799
	assert.Equal(t, 799.0, p.EffectivePrice())
}

func TestProduct_RecomputeRatings(t *testing.T) {
	p := Product{Reviews: []Review{
		{UserID: primitive.NewObjectID(), Rating: 4, CreatedAt: time.Now()},
		{UserID: primitive.NewObjectID(), Rating: 5, CreatedAt: time.Now()},
		{UserID: primitive.NewObjectID(), Rating: 3, CreatedAt: time.Now()},
	}}
	p.RecomputeRatings()
	assert.Equal(t, 3, p.NumReviews)
	assert.Equal(t, 4.0, p.Ratings)

	p.Reviews = nil
	p.RecomputeRatings()
	assert.Equal(t, 0, p.NumReviews)
	assert.Zero(t, p.Ratings)
}
