package utils

import (
	qrcode "github.com/skip2/go-qrcode"
)

// EncodeQRPNG renders the value as a square PNG of the given pixel size.
func EncodeQRPNG(value string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(value, qrcode.Medium, size)
}
