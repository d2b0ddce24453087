package service

import "errors"

var (
	ErrSetNotFound         = errors.New("set not found in catalog")
	ErrNotInCollection     = errors.New("set not in collection")
	ErrNotInWishlist       = errors.New("set not in wishlist")
	ErrAlreadyInCollection = errors.New("set already in collection")
	ErrFigNotInSet         = errors.New("minifigure not part of set")
	ErrInvalidQuantity     = errors.New("invalid quantity")
)
