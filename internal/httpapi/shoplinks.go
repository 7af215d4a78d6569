package httpapi

import (
	"net/url"
	"strings"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
)

// ShopLinks are search URLs for the major shopping portals, built from the
// item's brand and name (falling back to SKU when unnamed).
type ShopLinks struct {
	Naver   string `json:"naver"`
	Coupang string `json:"coupang"`
	Google  string `json:"google"`
}

func BuildShopLinks(item domain.CatalogItem) ShopLinks {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = strings.TrimSpace(item.SKU)
	}
	query := url.QueryEscape(strings.TrimSpace(strings.TrimSpace(item.Brand) + " " + name))

	return ShopLinks{
		Naver:   "https://search.shopping.naver.com/search/all?query=" + query,
		Coupang: "https://www.coupang.com/np/search?component=&q=" + query,
		Google:  "https://www.google.com/search?tbm=shop&q=" + query,
	}
}
