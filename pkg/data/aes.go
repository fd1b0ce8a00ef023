package data

// Aes identifies a visual channel a data field can be mapped onto.
type Aes string

// Visual channels supported by the engine.
const (
	AesX     Aes = "x"
	AesY     Aes = "y"
	AesY2    Aes = "y2"
	AesColor Aes = "color"
	AesFill  Aes = "fill"
	AesSize  Aes = "size"
	AesAlpha Aes = "alpha"
	AesShape Aes = "shape"
	AesLabel Aes = "label"
	AesXMin  Aes = "xmin"
	AesXMax  Aes = "xmax"
	AesYMin  Aes = "ymin"
	AesYMax  Aes = "ymax"
	AesXEnd  Aes = "xend"
	AesYEnd  Aes = "yend"
	AesGroup Aes = "group"

	// Five-number summary channels used by boxplot and crossbar.
	AesLower  Aes = "lower"
	AesMiddle Aes = "middle"
	AesUpper  Aes = "upper"
)

// Mapping assigns data fields to visual channels. A channel without an
// entry is unmapped; geometries fall back to their fixed parameters.
type Mapping map[Aes]string

// Field returns the data field mapped to the channel, if any.
func (m Mapping) Field(a Aes) (string, bool) {
	f, ok := m[a]
	return f, ok
}

// Has reports whether the channel is mapped.
func (m Mapping) Has(a Aes) bool {
	_, ok := m[a]
	return ok
}

// Number resolves the channel for record r to a numeric value.
// Returns false when the channel is unmapped or the record is missing
// for that channel.
func (m Mapping) Number(r Record, a Aes) (float64, bool) {
	f, ok := m[a]
	if !ok {
		return 0, false
	}
	return NumberField(r, f)
}

// String resolves the channel for record r to a string value.
func (m Mapping) String(r Record, a Aes) (string, bool) {
	f, ok := m[a]
	if !ok {
		return "", false
	}
	return StringField(r, f)
}
