package domain

import "time"

// Product is a menu item. Prices are stored in centavos to avoid float
// arithmetic on money. PK: product_id, GSI: category-index.
type Product struct {
	ProductID   string      `json:"product_id" dynamodbav:"product_id"`
	Name        string      `json:"name" dynamodbav:"name"`
	Description string      `json:"description,omitempty" dynamodbav:"description"`
	Price       int64       `json:"price" dynamodbav:"price"` // centavos
	Category    string      `json:"category" dynamodbav:"category"`
	Available   bool        `json:"available" dynamodbav:"available"`
	Variations  []Variation `json:"variations,omitempty" dynamodbav:"variations,omitempty"`
	ImageKey    string      `json:"image_key,omitempty" dynamodbav:"image_key,omitempty"`
	CreatedAt   time.Time   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" dynamodbav:"updated_at"`
}

// Variation is a customization axis of a product (e.g. "cobertura", "casquinha").
type Variation struct {
	VariationID string            `json:"variation_id" dynamodbav:"variation_id"`
	Name        string            `json:"name" dynamodbav:"name"`
	Options     []VariationOption `json:"options" dynamodbav:"options"`
}

// VariationOption is one selectable choice within a variation.
// AdditionalPrice is added per unit to the cart item when selected.
type VariationOption struct {
	OptionID        string `json:"option_id" dynamodbav:"option_id"`
	Name            string `json:"name" dynamodbav:"name"`
	AdditionalPrice int64  `json:"additional_price,omitempty" dynamodbav:"additional_price"`
}

// OptionPrice resolves the additional price of the chosen option for a
// variation. The second return is false when the variation or option does not
// exist on this product.
func (p *Product) OptionPrice(variationID, optionID string) (int64, bool) {
	for _, v := range p.Variations {
		if v.VariationID != variationID {
			continue
		}
		for _, o := range v.Options {
			if o.OptionID == optionID {
				return o.AdditionalPrice, true
			}
		}
		return 0, false
	}
	return 0, false
}
