package service

// QRCodeService renders "scan to order" codes for catalog products.
type QRCodeService interface {
	// GenerateProductQRCode returns a PNG image encoding the order link for
	// the given product id.
	GenerateProductQRCode(productID string) ([]byte, error)
}
