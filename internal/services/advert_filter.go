package services

import (
	"strconv"
	"strings"

	"wallaclone/internal/models"
)

// ParseAdvertQuery builds the store-level filter from the listing query
// parameters. publicSearch hides sold adverts, the private member listing
// shows them.
//
// Supported parameters:
//
//	name     case-insensitive prefix match
//	for_sale "true" or "false"
//	tag      membership in the tags list
//	price    "N" exact, "N-M" range, "N-" at least, "-M" at most
//	page     1-based page number, combined with limit into an offset
//	limit    page size
//	sort     "asc" lists oldest first, anything else newest first
//	fields   comma-separated column projection
func ParseAdvertQuery(params map[string]string, publicSearch bool) models.AdvertFilter {
	filter := models.AdvertFilter{
		NamePrefix: params["name"],
		Tag:        params["tag"],
		OnlyUnsold: publicSearch,
	}

	switch params["for_sale"] {
	case "true":
		v := true
		filter.ForSale = &v
	case "false":
		v := false
		filter.ForSale = &v
	}

	parsePrice(params["price"], &filter)

	limit, _ := strconv.Atoi(params["limit"])
	if limit > 0 {
		filter.Limit = limit
	}
	page, _ := strconv.Atoi(params["page"])
	if page > 1 && filter.Limit > 0 {
		filter.Skip = filter.Limit * (page - 1)
	}

	if strings.EqualFold(params["sort"], "asc") {
		filter.Oldest = true
	}

	if fields := params["fields"]; fields != "" {
		for _, f := range strings.Split(fields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				filter.Fields = append(filter.Fields, f)
			}
		}
	}

	return filter
}

// parsePrice fills the price bounds of the filter. A bound that does not
// parse as a number is simply absent.
func parsePrice(raw string, filter *models.AdvertFilter) {
	if raw == "" {
		return
	}
	if !strings.Contains(raw, "-") {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.PriceExact = &v
		}
		return
	}
	parts := strings.SplitN(raw, "-", 2)
	if v, err := strconv.ParseFloat(parts[0], 64); err == nil {
		filter.PriceMin = &v
	}
	if v, err := strconv.ParseFloat(parts[1], 64); err == nil {
		filter.PriceMax = &v
	}
}
