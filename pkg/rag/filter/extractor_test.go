package filter

import (
	"testing"

	"albi-mall-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *Extractor {
	return NewExtractor([]string{"Michael Kors"}, logger.NewNopLogger())
}

func TestExtract_Color(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		utterance string
		want      string
	}{
		{"red bag under $100", "red"},
		{"a crimson clutch", "red"},
		{"black tote with red stitching", "black"},
		{"dua një çantë të kuqe", "red"},
		{"cante e zeze", "black"},
		{"navy backpack", "blue"},
		{"rose gold watch", "gold"},
		{"sky blue crossbody", "blue"},
		{"a rose print scarf", ""},
		{"cream wallet", ""},
		{"show me totes", ""},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.utterance).Color)
		})
	}
}

func TestExtract_Price(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		utterance string
		min       *float64
		max       *float64
	}{
		{"red bag under $100", nil, Price(100)},
		{"bags below 80", nil, Price(80)},
		{"something over $200", Price(200), nil},
		{"totes $50-$150", Price(50), Price(150)},
		{"up to 120 dollars", nil, Price(120)},
		{"around $100", Price(50), Price(150)},
		{"around $30", Price(0), Price(80)},
		{"less than $100", nil, Price(99)},
		{"200 budget", nil, Price(200)},
		{"my budget is $1,500", nil, Price(1500)},
		{"between $50 and $30", Price(30), Price(50)},
		{"over 200 under 100", Price(100), Price(200)},
		{"çantë nën 100", nil, Price(100)},
		{"portofol mbi 50", Price(50), nil},
		{"nga 40 deri 90", Price(40), Price(90)},
		{"rreth 100 lekë", Price(50), Price(150)},
		{"më pak se 60", nil, Price(59)},
		{"bag no more than $100", nil, Price(100)},
		{"tote not more than $80", nil, Price(80)},
		{"bags no less than $200", Price(200), nil},
		{"not over $150", nil, Price(150)},
		{"at least $120", Price(120), nil},
		{"jo më shumë se 90", nil, Price(90)},
		{"2 to 3 totes under $100", nil, Price(100)},
		{"totes 50 to 150 dollars", Price(50), Price(150)},
		{"no price here", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			fs := e.Extract(tt.utterance)
			assert.Equal(t, tt.min, fs.MinPrice, "min")
			assert.Equal(t, tt.max, fs.MaxPrice, "max")
			if fs.MinPrice != nil && fs.MaxPrice != nil {
				assert.LessOrEqual(t, *fs.MinPrice, *fs.MaxPrice)
			}
		})
	}
}

func TestExtract_ProductType(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		utterance   string
		productType string
		category    string
		subcategory string
	}{
		{"show me totes", "tote", "bags", "tote"},
		{"a tote bag please", "tote", "bags", "tote"},
		{"red handbag", "bag", "bags", ""},
		{"I need a wallet", "wallet", "", "wallet"},
		{"çantat e zeza", "bag", "bags", ""},
		{"çantë shpine për udhëtim", "backpack", "bags", "backpack"},
		{"portofolat prej lëkure", "wallet", "", "wallet"},
		{"bag or backpack", "backpack", "bags", "backpack"},
		{"crossbody or satchel", "crossbody", "bags", "crossbody"},
		{"something nice", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			fs := e.Extract(tt.utterance)
			assert.Equal(t, tt.productType, fs.ProductType)
			assert.Equal(t, tt.category, fs.Category)
			assert.Equal(t, tt.subcategory, fs.Subcategory)
		})
	}
}

func TestExtract_MaterialBrandOccasionSize(t *testing.T) {
	e := newTestExtractor()

	fs := e.Extract("small leather Gucci bag for the office")
	assert.Equal(t, "leather", fs.Material)
	assert.Equal(t, "gucci", fs.Brand)
	assert.Equal(t, "work", fs.Occasion)
	assert.Equal(t, "small", fs.Size)

	fs = e.Extract("MK clutch for a cocktail party")
	assert.Equal(t, "michael kors", fs.Brand)
	assert.Equal(t, "evening", fs.Occasion)

	fs = e.Extract("çantë e madhe prej kamoshi për mbrëmje")
	assert.Equal(t, "suede", fs.Material)
	assert.Equal(t, "evening", fs.Occasion)
	assert.Equal(t, "large", fs.Size)
}

func TestExtract_EmptyUtterance(t *testing.T) {
	fs := newTestExtractor().Extract("   ")
	assert.True(t, fs.IsEmpty())
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "red bag under 100", NormalizeQuery("Red bag, under $100!"))
	assert.Equal(t, "dua nje bag te red", NormalizeQuery("Dua një çantë të kuqe"))
	assert.Equal(t, "backpack e black", NormalizeQuery("çantë shpine e zezë"))
	assert.Equal(t, "", NormalizeQuery("?!"))
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"red", "tote", "100"}, Keywords("show me a red tote under 100"))
}

func TestFilterSet_Overlay(t *testing.T) {
	base := FilterSet{Color: "red", MinPrice: Price(50), MaxPrice: Price(150)}.WithProductType("tote")

	t.Run("price replaced as a group", func(t *testing.T) {
		merged := base.Overlay(FilterSet{MaxPrice: Price(100)})
		assert.Nil(t, merged.MinPrice)
		require.NotNil(t, merged.MaxPrice)
		assert.Equal(t, 100.0, *merged.MaxPrice)
		assert.Equal(t, "tote", merged.ProductType)
		assert.Equal(t, "red", merged.Color)
	})

	t.Run("item class replaced as a group", func(t *testing.T) {
		merged := base.Overlay(FilterSet{}.WithProductType("wallet"))
		assert.Equal(t, "wallet", merged.ProductType)
		assert.Equal(t, "", merged.Category)
		assert.Equal(t, "wallet", merged.Subcategory)
	})

	t.Run("does not alias price pointers", func(t *testing.T) {
		merged := base.Overlay(FilterSet{Color: "black"})
		*merged.MaxPrice = 1
		assert.Equal(t, 150.0, *base.MaxPrice)
	})
}

func TestFilterSet_Describe(t *testing.T) {
	fs := FilterSet{Color: "red", MaxPrice: Price(100)}.WithProductType("tote")
	assert.Equal(t, "color=red, price<=100, type=tote, category=bags, subcategory=tote", fs.Describe())
	assert.Equal(t, "none", FilterSet{}.Describe())
}

func TestHasPriceCue(t *testing.T) {
	assert.True(t, HasPriceCue("anything cheaper?"))
	assert.True(t, HasPriceCue("under $100"))
	assert.True(t, HasPriceCue("diçka më të lirë"))
	assert.False(t, HasPriceCue("in black"))
}
