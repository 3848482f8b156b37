package models

// FilterKind names an image filter the external filter collaborator can
// apply to a single page. The set is closed; the registry in
// internal/filters carries display metadata for each kind.
type FilterKind string

const (
	FilterNone       FilterKind = "none"
	FilterBlackWhite FilterKind = "blackWhite"
	FilterGrayscale  FilterKind = "grayscale"
	FilterMagicColor FilterKind = "magicColor"
	FilterLighten    FilterKind = "lighten"
	FilterDarken     FilterKind = "darken"
	FilterContrast   FilterKind = "contrast"
	FilterBrightness FilterKind = "brightness"
)
