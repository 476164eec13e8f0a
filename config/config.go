package config

import (
	_ "embed"
)

// extractor config
//
//go:embed default.config.yml
var DefaultConfigYml string

// example treasury accounts / issued tokens
//
//go:embed example.frens.yml
var ExampleFrensYml string
