package gifts

import "errors"

var (
	ErrGiftItemNotFound = errors.New("gift item not found")
)
