// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"storefront/internal/domain/entity"
)

// Response models keep wire payloads decoupled from domain entities; nothing
// sensitive (password hashes) ever reaches the client.

type userJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type productJSON struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Slug               string  `json:"slug"`
	Description        string  `json:"description,omitempty"`
	CurrentPrice       string  `json:"current_price"`
	DiscountPrice      string  `json:"discount_price,omitempty"`
	DiscountPercentage int     `json:"discount_percentage"`
	ActualPrice        string  `json:"actual_price"`
	OnSale             bool    `json:"on_sale"`
	PurchasesCount     int     `json:"purchases_count"`
	Size               *string `json:"size,omitempty"`
	Material           *string `json:"material,omitempty"`
}

type commentJSON struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type favoriteJSON struct {
	ID      string       `json:"id"`
	Product *productJSON `json:"product"`
}

type cartItemJSON struct {
	ID       string       `json:"id"`
	Product  *productJSON `json:"product"`
	Quantity int          `json:"quantity"`
}

type cartJSON struct {
	Items []cartItemJSON `json:"items"`
	Total string         `json:"total"`
}

type orderItemJSON struct {
	ProductID string       `json:"product_id"`
	Product   *productJSON `json:"product,omitempty"`
	Price     string       `json:"price"`
	Quantity  int          `json:"quantity"`
}

type orderJSON struct {
	ID              string          `json:"id"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	ShippingAddress string          `json:"shipping_address"`
	PhoneNumber     string          `json:"phone_number"`
	Paid            bool            `json:"paid"`
	Total           string          `json:"total"`
	Items           []orderItemJSON `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toUserJSON(user *entity.User) *userJSON {
	if user == nil {
		return nil
	}

	return &userJSON{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}
}

func toProductJSON(product *entity.Product) *productJSON {
	if product == nil {
		return nil
	}

	out := &productJSON{
		ID:                 product.ID.String(),
		Name:               product.Name,
		Slug:               product.Slug,
		Description:        product.Description,
		CurrentPrice:       product.CurrentPrice.StringFixed(2),
		DiscountPercentage: product.DiscountPercentage,
		ActualPrice:        product.ActualPrice().StringFixed(2),
		OnSale:             product.OnSale(),
		PurchasesCount:     product.PurchasesCount,
	}
	if product.OnSale() {
		out.DiscountPrice = product.DiscountPrice.StringFixed(2)
	}
	if product.Size != nil {
		out.Size = &product.Size.Name
	}
	if product.Material != nil {
		out.Material = &product.Material.Name
	}

	return out
}

func toProductListJSON(products []*entity.Product) []*productJSON {
	out := make([]*productJSON, 0, len(products))
	for _, product := range products {
		out = append(out, toProductJSON(product))
	}

	return out
}

func toCommentJSON(comment *entity.Comment) *commentJSON {
	if comment == nil {
		return nil
	}

	return &commentJSON{
		ID:        comment.ID.String(),
		ProductID: comment.ProductID.String(),
		UserID:    comment.UserID.String(),
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

func toCartJSON(cart *entity.Cart) *cartJSON {
	items := make([]cartItemJSON, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemJSON{
			ID:       item.ID.String(),
			Product:  toProductJSON(item.Product),
			Quantity: item.Quantity,
		})
	}

	return &cartJSON{
		Items: items,
		Total: cart.Total().StringFixed(2),
	}
}

func toOrderJSON(order *entity.Order) *orderJSON {
	if order == nil {
		return nil
	}

	items := make([]orderItemJSON, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemJSON{
			ProductID: item.ProductID.String(),
			Product:   toProductJSON(item.Product),
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}

	return &orderJSON{
		ID:              order.ID.String(),
		FullName:        order.FullName,
		Email:           order.Email,
		ShippingAddress: order.ShippingAddress,
		PhoneNumber:     order.PhoneNumber,
		Paid:            order.Paid,
		Total:           order.Total().StringFixed(2),
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
