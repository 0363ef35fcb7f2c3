package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GeneratePaymentQR encodes a payment redirect URL as a PNG QR code so a
	// checkout can be finished by scanning on another device.
	GeneratePaymentQR(url string) ([]byte, error)
}
