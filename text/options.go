package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" (golang.org/x/image/font/sfnt); "gotext" uses
// github.com/go-text/typesetting. Unknown names fall back to the default.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// RegistryOption configures a FontRegistry.
type RegistryOption func(*registryConfig)

// registryConfig holds configuration for FontRegistry.
type registryConfig struct {
	workers int
}

// WithWorkers bounds how many glyphs are computed at once during a batch
// fill. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) RegistryOption {
	return func(c *registryConfig) {
		c.workers = n
	}
}
