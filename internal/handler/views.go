package handler

import (
	"storefront/internal/model"
	"storefront/internal/service"
)

// Response views add display strings formatted in the selected currency.
// Each response formats against a single currency snapshot.

type productView struct {
	model.Product
	DisplayPrice string `json:"displayPrice"`
}

func newProductView(p model.Product, c model.Currency) productView {
	return productView{Product: p, DisplayPrice: service.FormatAmount(p.Price, c)}
}

func newProductViews(products []model.Product, c model.Currency) []productView {
	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = newProductView(p, c)
	}
	return views
}

type cartLineView struct {
	model.CartLine
	DisplayPrice    string `json:"displayPrice"`
	DisplaySubtotal string `json:"displaySubtotal"`
}

type cartView struct {
	Items        []cartLineView `json:"items"`
	Total        float64        `json:"total"`
	DisplayTotal string         `json:"displayTotal"`
	ItemsCount   int            `json:"itemsCount"`
}

func newCartView(lines []model.CartLine, c model.Currency) cartView {
	items := make([]cartLineView, len(lines))
	for i, l := range lines {
		items[i] = cartLineView{
			CartLine:        l,
			DisplayPrice:    service.FormatAmount(l.Price, c),
			DisplaySubtotal: service.FormatAmount(l.Subtotal().InexactFloat64(), c),
		}
	}

	total := model.LinesTotal(lines).InexactFloat64()
	return cartView{
		Items:        items,
		Total:        total,
		DisplayTotal: service.FormatAmount(total, c),
		ItemsCount:   model.LinesCount(lines),
	}
}

type orderView struct {
	model.Order
	ItemsCount   int    `json:"itemsCount"`
	DisplayTotal string `json:"displayTotal"`
}

func newOrderView(o model.Order, c model.Currency) orderView {
	return orderView{Order: o, ItemsCount: o.ItemsCount(), DisplayTotal: service.FormatAmount(o.Total, c)}
}

func newOrderViews(orders []model.Order, c model.Currency) []orderView {
	views := make([]orderView, len(orders))
	for i, o := range orders {
		views[i] = newOrderView(o, c)
	}
	return views
}

type userOrderView struct {
	Username model.Username `json:"username"`
	orderView
}

type statsView struct {
	model.StoreStats
	DisplayRevenue string `json:"displayRevenue"`
}

type currencyView struct {
	model.Currency
	Selected bool `json:"selected"`
}
