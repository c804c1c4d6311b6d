package selfpromo

import "errors"

var (
	ErrNotFound              = errors.New("self-promo post not found")
	ErrNotOwner              = errors.New("you can only update your own posts")
	ErrOnlyBusinessesPromote = errors.New("only businesses can create self-promo posts")
)
