package repo

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrAttachmentNotFound    = errors.New("attachment not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value in unique field")
	ErrHasDependentSale      = errors.New("record has a dependent sale")
	ErrProductSold           = errors.New("product is sold")
)
