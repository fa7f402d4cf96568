package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrInvalidConfiguration      = errors.New("invalid sku generation configuration")
	ErrMissingVariants           = errors.New("variable product has no variants collection")
	ErrVariantGenerationDisabled = errors.New("variant sku generation is disabled")
	ErrProductNotFound           = errors.New("product not found")
	ErrSKUsNotFound              = errors.New("no skus stored for product")
	ErrGenerationInProgress      = errors.New("sku generation is already running for this product")
	ErrReadOnlySettings          = errors.New("settings source is read-only")
)

// ConfigurationError reports an enum-valued setting outside its known set
type ConfigurationError struct {
	Setting string
	Value   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid value %q for setting %s", e.Value, e.Setting)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// DataError reports a product snapshot that cannot be generated from
type DataError struct {
	ProductID ID
	Reason    string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("product %s: %s", e.ProductID, e.Reason)
}

func (e *DataError) Unwrap() error {
	return ErrMissingVariants
}
