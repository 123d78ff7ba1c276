package spajsonpo

// Config holds the settings of one extraction run.
type Config struct {
	ConverterPath string `env:"SPA_JSON_DUMP" envDefault:"spa-json-dump"`
	Verbose       bool   `env:"SPA_JSON_PO_VERBOSE"`
	KeyPatterns   []string
	Output        string
}

// ProjectFile is the optional YAML file given with --config.
type ProjectFile struct {
	KeyMatch  KeyList `yaml:"key-match"`
	Output    string  `yaml:"output"`
	Converter string  `yaml:"spa-json-dump"`
}
