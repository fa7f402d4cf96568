package models

// SimpleMode selects how simple and parent SKUs are generated
type SimpleMode string

const (
	SimpleModeNone SimpleMode = "none"
	SimpleModeSlug SimpleMode = "slug"
	SimpleModeID   SimpleMode = "id"
)

// VariantMode selects how variant SKU fragments are generated
type VariantMode string

const (
	VariantModeNone       VariantMode = "none"
	VariantModeAttributes VariantMode = "attributes"
	VariantModeID         VariantMode = "id"
)

// SpaceHandling selects how spaces inside attribute values are rewritten
type SpaceHandling string

const (
	SpaceHandlingKeep       SpaceHandling = "keep"
	SpaceHandlingUnderscore SpaceHandling = "underscore"
	SpaceHandlingDash       SpaceHandling = "dash"
	SpaceHandlingRemove     SpaceHandling = "remove"
)

// Setting names used in configuration errors
const (
	SettingSimpleMode             = "simpleMode"
	SettingVariantMode            = "variantMode"
	SettingAttributeSpaceHandling = "attributeSpaceHandling"
)

// DefaultSeparator joins parent SKUs, fragments and attribute values
const DefaultSeparator = "-"

// IsValid reports whether the mode is one of the known values
func (m SimpleMode) IsValid() bool {
	switch m {
	case SimpleModeNone, SimpleModeSlug, SimpleModeID:
		return true
	}
	return false
}

// IsValid reports whether the mode is one of the known values
func (m VariantMode) IsValid() bool {
	switch m {
	case VariantModeNone, VariantModeAttributes, VariantModeID:
		return true
	}
	return false
}

// IsValid reports whether the rule is one of the known values
func (s SpaceHandling) IsValid() bool {
	switch s {
	case SpaceHandlingKeep, SpaceHandlingUnderscore, SpaceHandlingDash, SpaceHandlingRemove:
		return true
	}
	return false
}

// GenerationConfig holds the format options for one generation run
type GenerationConfig struct {
	SimpleMode             SimpleMode    `json:"simpleMode"`
	VariantMode            VariantMode   `json:"variantMode"`
	AttributeSpaceHandling SpaceHandling `json:"attributeSpaceHandling"`
	Separator              string        `json:"separator"`
	ForceAttributeSort     bool          `json:"forceAttributeSort"`
}

// DefaultGenerationConfig returns the settings a fresh install starts with
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		SimpleMode:             SimpleModeSlug,
		VariantMode:            VariantModeAttributes,
		AttributeSpaceHandling: SpaceHandlingKeep,
		Separator:              DefaultSeparator,
		ForceAttributeSort:     false,
	}
}

// Validate checks every enum-valued setting
func (c GenerationConfig) Validate() error {
	if !c.SimpleMode.IsValid() {
		return &ConfigurationError{Setting: SettingSimpleMode, Value: string(c.SimpleMode)}
	}
	if !c.VariantMode.IsValid() {
		return &ConfigurationError{Setting: SettingVariantMode, Value: string(c.VariantMode)}
	}
	if !c.AttributeSpaceHandling.IsValid() {
		return &ConfigurationError{Setting: SettingAttributeSpaceHandling, Value: string(c.AttributeSpaceHandling)}
	}
	return nil
}

// WritesProductSKU reports whether the product level SKU should be persisted
func (c GenerationConfig) WritesProductSKU() bool {
	return c.SimpleMode != SimpleModeNone
}

// WritesVariantSKUs reports whether variant SKUs should be persisted
func (c GenerationConfig) WritesVariantSKUs() bool {
	return c.VariantMode != VariantModeNone
}
