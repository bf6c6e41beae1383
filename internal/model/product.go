package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxListImages bounds Product.ListImages.
const MaxListImages = 10

type ProductType string

const (
	ProductTypeOnSale   ProductType = "on-sale"
	ProductTypeBooking  ProductType = "booking"
	ProductTypeHandover ProductType = "handover-in-progress"
)

// legacy labels stored by the first version of the admin panel
var productTypeAliases = map[string]ProductType{
	"on-sale":              ProductTypeOnSale,
	"đang mở bán":          ProductTypeOnSale,
	"booking":              ProductTypeBooking,
	"handover-in-progress": ProductTypeHandover,
	"đang bàn giao":        ProductTypeHandover,
}

// ParseProductType accepts a canonical value or a legacy label, case-insensitively.
func ParseProductType(s string) (ProductType, bool) {
	t, ok := productTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

func ProductTypes() []ProductType {
	return []ProductType{ProductTypeOnSale, ProductTypeBooking, ProductTypeHandover}
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Area          string             `bson:"area" json:"area"`
	Investor      string             `bson:"investor" json:"investor"`
	Type          ProductType        `bson:"type" json:"type"`
	ApartmentType string             `bson:"apartmentType" json:"apartmentType"`
	Acreage       string             `bson:"acreage" json:"acreage"`
	DefaultImage  string             `bson:"defaultImage" json:"defaultImage"`
	ListImages    []string           `bson:"listImages" json:"listImages"`
	Detail        string             `bson:"detail" json:"detail"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductSummary is the list-view projection; detail and the image list are
// left out to keep listing payloads small.
type ProductSummary struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Area          string             `bson:"area" json:"area"`
	Investor      string             `bson:"investor" json:"investor"`
	DefaultImage  string             `bson:"defaultImage" json:"defaultImage"`
	Slug          string             `bson:"slug" json:"slug"`
	ApartmentType string             `bson:"apartmentType" json:"apartmentType"`
}
