package types

// Config is a struct to hold the configuration data
type Config struct {
	Logging struct {
		OutputLevel  string `yaml:"outputLevel" envconfig:"LOGGING_OUTPUT_LEVEL"`
		OutputFormat string `yaml:"outputFormat" envconfig:"LOGGING_OUTPUT_FORMAT"`
		OutputStdout bool   `yaml:"outputStdout" envconfig:"LOGGING_OUTPUT_STDOUT"`
	} `yaml:"logging"`

	Frens struct {
		FilePath string     `yaml:"filePath" envconfig:"FRENS_FILE_PATH"`
		File     *FrensFile `yaml:"-" ignored:"true"`
	} `yaml:"frens"`

	Extraction struct {
		Workers int `yaml:"workers" envconfig:"EXTRACTION_WORKERS"`
	} `yaml:"extraction"`

	Output struct {
		DbEngine string `yaml:"dbEngine" envconfig:"OUTPUT_DB_ENGINE"`
		DbSchema string `yaml:"dbSchema" envconfig:"OUTPUT_DB_SCHEMA"`
	} `yaml:"output"`

	Metrics struct {
		TextfilePath string `yaml:"textfilePath" envconfig:"METRICS_TEXTFILE_PATH"`
	} `yaml:"metrics"`
}
