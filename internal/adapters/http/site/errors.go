package site

import "errors"

// Error constants
var (
	ErrRender = errors.New("page render failed")
	ErrQRCode = errors.New("qr code generation failed")
)
