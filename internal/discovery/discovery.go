// Package discovery ranks and filters a restaurant dataset for the listing
// and free-text search endpoints. It is a pure, request-scoped transform:
// fetched records are never mutated, only projected into fresh view slices.
package discovery

import (
	"sort"

	"feastly/internal/model"
	"feastly/internal/paging"
	"feastly/internal/schedule"
	"feastly/internal/similarity"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// dishPenalty is subtracted from dish-name relevance so a dish match never
// outranks an equally good restaurant-name match.
const dishPenalty = 0.1

// Engine computes the discovery views over an already-fetched snapshot of
// restaurants with menus.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a discovery engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "discovery").Logger(),
	}
}

// List applies the filter pipeline and returns one page of restaurant
// summaries: open-now filter, dish count within the price band, dish-count
// band filter, optional alphabetical sort, pagination.
func (e *Engine) List(restaurants []model.Restaurant, f Filters) (paging.Page[model.RestaurantSummary], error) {
	summaries := make([]model.RestaurantSummary, 0, len(restaurants))

	for _, r := range restaurants {
		if f.OpenAt != nil {
			s, err := schedule.Parse(r.OpeningHours)
			if err != nil {
				// Stored hours are validated on write; an undecodable
				// schedule cannot match a time filter.
				e.logger.Warn().
					Err(err).
					Int64("restaurant_id", r.ID).
					Msg("stored opening hours failed to parse")
				continue
			}
			if !s.OpenAt(*f.OpenAt) {
				continue
			}
		}

		dishCount := 0
		for _, menu := range r.Menus {
			if menu.Price >= f.PriceFloor && menu.Price <= f.PriceCeil {
				dishCount++
			}
		}
		if dishCount < f.DishFloor || dishCount > f.DishCeil {
			continue
		}

		summaries = append(summaries, r.Summary())
	}

	if f.Alphabetical {
		c := collate.New(language.English)
		sort.SliceStable(summaries, func(i, j int) bool {
			return c.CompareString(summaries[i].Name, summaries[j].Name) < 0
		})
	}

	e.logger.Debug().
		Int("input", len(restaurants)).
		Int("matched", len(summaries)).
		Bool("sorted", f.Alphabetical).
		Msg("restaurant listing filtered")

	return paging.Paginate(summaries, f.ItemsPerPage, f.Page)
}

// Search ranks every restaurant by relevance to the query and returns one
// page of scored views. Relevance is the best of the restaurant-name score
// and the per-dish scores less the dish penalty. Ties preserve the original
// retrieval order.
func (e *Engine) Search(restaurants []model.Restaurant, query string, page, itemsPerPage int) (paging.Page[model.RestaurantWithRelevance], error) {
	scored := make([]model.RestaurantWithRelevance, 0, len(restaurants))

	for _, r := range restaurants {
		relevance := similarity.Score(query, r.Name)
		for _, menu := range r.Menus {
			if dish := similarity.Score(query, menu.DishName) - dishPenalty; dish > relevance {
				relevance = dish
			}
		}
		scored = append(scored, model.RestaurantWithRelevance{
			RestaurantSummary: r.Summary(),
			Relevance:         relevance,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Relevance > scored[j].Relevance
	})

	e.logger.Debug().
		Str("query", query).
		Int("candidates", len(scored)).
		Msg("restaurant search ranked")

	return paging.Paginate(scored, itemsPerPage, page)
}
