package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no behavior.
//
// The runtime behavior (quoting, keyword casing) lives in
// pkg/dialect.Dialect, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgresql")
	Name Database

	// DisplayName is the human readable name used in comment banners
	DisplayName string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// Keywords are the dialect additions layered on the common keyword set.
	// Multi-word keywords are written with single spaces ("ON DUPLICATE KEY UPDATE").
	Keywords []string
}

// NormalizationStrategy defines how identifiers are normalized before quoting.
type NormalizationStrategy int

const (
	// NormPreserve keeps identifier case exactly as written.
	NormPreserve NormalizationStrategy = iota
	// NormUppercase upper-cases identifiers before quoting (Oracle).
	NormUppercase
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [ (empty means no quoting)
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Normalization NormalizationStrategy // How to normalize identifiers before quoting
}
