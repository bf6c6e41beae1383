package repo

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page is a store-side window. Zero values mean page 1 and DefaultLimit.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Page) Skip() int64 {
	p = p.Normalize()
	return int64((p.Page - 1) * p.Limit)
}

type ProductFilter struct {
	Type          string
	Areas         []string
	Investors     []string
	ApartmentType string
	// Project matches the product name exactly.
	Project string
	Page    Page
}

type BlogFilter struct {
	// Title is a case-insensitive substring; regex metacharacters are literal.
	Title string
}

type ProjectFilter struct {
	Category string
	Type     string
}

// oneOrIn is an exact match for a single value and set membership for more.
func oneOrIn(values []string) (any, bool) {
	vals := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			vals = append(vals, v)
		}
	}
	switch len(vals) {
	case 0:
		return nil, false
	case 1:
		return vals[0], true
	default:
		return bson.M{"$in": vals}, true
	}
}

func BuildProductFilter(f ProductFilter) bson.M {
	q := bson.M{}
	if f.Type != "" {
		q["type"] = f.Type
	}
	if v, ok := oneOrIn(f.Areas); ok {
		q["area"] = v
	}
	if v, ok := oneOrIn(f.Investors); ok {
		q["investor"] = v
	}
	if f.ApartmentType != "" {
		q["apartmentType"] = f.ApartmentType
	}
	if f.Project != "" {
		q["name"] = f.Project
	}
	return q
}

func BuildBlogFilter(f BlogFilter) bson.M {
	q := bson.M{}
	if t := strings.TrimSpace(f.Title); t != "" {
		q["title"] = bson.M{"$regex": regexp.QuoteMeta(t), "$options": "i"}
	}
	return q
}

func BuildProjectFilter(f ProjectFilter) bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Type != "" {
		q["type"] = f.Type
	}
	return q
}
