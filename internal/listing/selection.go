package listing

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query parameter names shared with the public listing page.
const (
	ParamApartmentType = "apartmentType"
	ParamArea          = "area"
	ParamInvestor      = "investor"
	ParamProject       = "project"
	ParamQuery         = "q"
	ParamPage          = "page"
)

// Selection is the filter state of a listing page. Areas and investors are
// sets; the zero Page means the first page.
type Selection struct {
	Areas         []string
	Investors     []string
	ApartmentType string
	Project       string
	Query         string
	Page          int
}

// Canonical sorts and de-duplicates the sets and normalises Page so two
// selections with the same meaning compare equal.
func (s Selection) Canonical() Selection {
	s.Areas = canonicalSet(s.Areas)
	s.Investors = canonicalSet(s.Investors)
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

func (s Selection) Empty() bool {
	c := s.Canonical()
	return len(c.Areas) == 0 && len(c.Investors) == 0 && c.ApartmentType == "" &&
		c.Project == "" && c.Query == "" && c.Page == 1
}

func canonicalSet(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Encode writes the selection as a query string in a fixed order:
// apartmentType, area..., investor..., project, q, page (only when > 1).
// An empty selection encodes to "".
func Encode(s Selection) string {
	s = s.Canonical()

	var parts []string
	add := func(k, v string) {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v))
	}

	if s.ApartmentType != "" {
		add(ParamApartmentType, s.ApartmentType)
	}
	for _, a := range s.Areas {
		add(ParamArea, a)
	}
	for _, i := range s.Investors {
		add(ParamInvestor, i)
	}
	if s.Project != "" {
		add(ParamProject, s.Project)
	}
	if s.Query != "" {
		add(ParamQuery, s.Query)
	}
	if s.Page > 1 {
		add(ParamPage, strconv.Itoa(s.Page))
	}
	return strings.Join(parts, "&")
}

// Decode reads a query string (with or without the leading "?"). Unknown
// parameters are ignored; for single-valued parameters the first value wins.
func Decode(rawQuery string) (Selection, error) {
	vals, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Selection{}, err
	}
	return FromValues(vals), nil
}

// FromValues builds a canonical selection from already parsed values.
func FromValues(vals url.Values) Selection {
	s := Selection{
		Areas:         vals[ParamArea],
		Investors:     vals[ParamInvestor],
		ApartmentType: vals.Get(ParamApartmentType),
		Project:       vals.Get(ParamProject),
		Query:         vals.Get(ParamQuery),
	}
	if p, err := strconv.Atoi(vals.Get(ParamPage)); err == nil {
		s.Page = p
	}
	return s.Canonical()
}
