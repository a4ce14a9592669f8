package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// Required fails fast on the settings the POS service cannot start without.
func (c Config) Required() {
	MustNonEmpty(c.SalesURL, "SALES_URL")
	MustNonEmpty(c.ProductsURL, "PRODUCTS_URL")
	MustNonEmptyBytes(c.JWTAccessSecret, "JWT_SECRET")
}
