package model

// AllModels lists every persistence model, used for migrations and code
// generation.
func AllModels() []any {
	return []any{
		&UserModel{},
		&SizeModel{},
		&MaterialModel{},
		&ProductModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&CommentModel{},
		&FavoriteModel{},
	}
}
