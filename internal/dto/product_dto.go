package dto

type ProductListRequest struct {
	Category string `query:"category" validate:"omitempty,max=64"`
	Brand    string `query:"brand" validate:"omitempty,max=64"`
	Sort     string `query:"sort" validate:"omitempty,oneof=price -price rating -rating name"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset   int    `query:"offset" validate:"omitempty,min=0"`
}

type ProductDTO struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Subcategory        string   `json:"subcategory"`
	Price              float64  `json:"price"`
	OriginalPrice      *float64 `json:"original_price,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	Color              string   `json:"color"`
	Colors             []string `json:"colors"`
	Size               string   `json:"size,omitempty"`
	Material           string   `json:"material,omitempty"`
	Description        string   `json:"description,omitempty"`
	Features           []string `json:"features,omitempty"`
	Availability       string   `json:"availability"`
	Rating             float64  `json:"rating"`
	ReviewsCount       int      `json:"reviews_count"`
}

// ProductSummary is the short form shown in session views.
type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Color string  `json:"color"`
}

type ProductListResponse struct {
	Products []ProductDTO `json:"products"`
	Count    int          `json:"count"`
	Total    int          `json:"total"`
}
