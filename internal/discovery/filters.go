package discovery

import (
	"net/url"
	"strconv"
	"time"

	"feastly/internal/model"
)

// dateTimeLayout is the wire format of the `datetime` query parameter.
const dateTimeLayout = "02/01/2006/15:04"

// Upper-bound sentinels used when a filter is absent. Large enough to be
// effectively unbounded for restaurant menus.
const (
	defaultPriceCeil = 999999
	defaultDishCeil  = 10000
)

// Filters is the parsed, validated set of listing predicates. One instance
// per request.
type Filters struct {
	// OpenAt restricts the listing to restaurants open at this instant.
	// Nil means no time filter.
	OpenAt *time.Time

	// PriceFloor and PriceCeil bound the price band a dish must fall in
	// to count towards DishFloor/DishCeil.
	PriceFloor float64
	PriceCeil  float64

	// DishFloor and DishCeil bound the number of dishes within the price
	// band a restaurant must have to be listed.
	DishFloor int
	DishCeil  int

	// Alphabetical requests a locale-aware stable sort by restaurant name.
	Alphabetical bool

	Page         int
	ItemsPerPage int
}

// DefaultFilters returns the filter set applied when no query parameters
// are given: every restaurant with at least one dish, original order,
// first page of ten.
func DefaultFilters() Filters {
	return Filters{
		PriceFloor:   0,
		PriceCeil:    defaultPriceCeil,
		DishFloor:    1,
		DishCeil:     defaultDishCeil,
		Page:         1,
		ItemsPerPage: 10,
	}
}

// ParseFilters validates the listing query parameters and builds a filter
// set. Every malformed value fails eagerly with a validation error; no
// filtering work happens on bad input.
func ParseFilters(values url.Values) (Filters, error) {
	f := DefaultFilters()

	if raw := values.Get("datetime"); raw != "" {
		at, err := ParseDateTime(raw)
		if err != nil {
			return Filters{}, err
		}
		f.OpenAt = &at
	}

	var err error
	if f.PriceFloor, err = parsePrice(values, "pricegte", f.PriceFloor); err != nil {
		return Filters{}, err
	}
	if f.PriceCeil, err = parsePrice(values, "pricelte", f.PriceCeil); err != nil {
		return Filters{}, err
	}
	if f.DishFloor, err = parseCount(values, "dishgte", f.DishFloor); err != nil {
		return Filters{}, err
	}
	if f.DishCeil, err = parseCount(values, "dishlte", f.DishCeil); err != nil {
		return Filters{}, err
	}
	if f.Page, err = parsePositiveInt(values, "page", f.Page); err != nil {
		return Filters{}, err
	}
	if f.ItemsPerPage, err = parsePositiveInt(values, "itemsperpage", f.ItemsPerPage); err != nil {
		return Filters{}, err
	}

	if raw := values.Get("sort"); raw != "" {
		sort, err := strconv.ParseBool(raw)
		if err != nil {
			return Filters{}, model.NewValidationError("parameter 'sort' must be a boolean")
		}
		f.Alphabetical = sort
	}

	return f, nil
}

// ParseDateTime parses the DD/MM/YYYY/HH:MM wire format.
func ParseDateTime(raw string) (time.Time, error) {
	at, err := time.Parse(dateTimeLayout, raw)
	if err != nil {
		return time.Time{}, model.ErrInvalidDateTime
	}
	return at, nil
}

// ParsePagination validates the shared page/itemsperpage parameters for
// endpoints that take no other filters.
func ParsePagination(values url.Values) (page, itemsPerPage int, err error) {
	if page, err = parsePositiveInt(values, "page", 1); err != nil {
		return 0, 0, err
	}
	if itemsPerPage, err = parsePositiveInt(values, "itemsperpage", 10); err != nil {
		return 0, 0, err
	}
	return page, itemsPerPage, nil
}

func parsePrice(values url.Values, key string, fallback float64) (float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price < 0 {
		return 0, model.NewValidationError("parameter '" + key + "' must be a non-negative number")
	}
	return price, nil
}

func parseCount(values url.Values, key string, fallback int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0, model.NewValidationError("parameter '" + key + "' must be a non-negative integer")
	}
	return count, nil
}

func parsePositiveInt(values url.Values, key string, fallback int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, model.NewValidationError("parameter '" + key + "' must be a positive integer")
	}
	return n, nil
}
