package catalog

import "time"

// Product is the item stored in the products DynamoDB table. The catalog
// is the source of truth for unit prices; pricing treats it as read-only.
type Product struct {
	ProductID   string    `dynamodbav:"product_id" json:"product_id"` // PK
	Name        string    `dynamodbav:"name" json:"name"`
	Description string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Price       float64   `dynamodbav:"price" json:"price"`
	CategoryID  string    `dynamodbav:"category_id,omitempty" json:"category_id,omitempty"`
	Stock       int       `dynamodbav:"stock" json:"stock"`
	ImageURL    string    `dynamodbav:"image_url,omitempty" json:"image_url,omitempty"`
	Enabled     bool      `dynamodbav:"enabled" json:"enabled"`
	CreatedAt   time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at" json:"updated_at"`
}
