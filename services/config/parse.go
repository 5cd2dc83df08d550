//go:build !(rp2040 || rp2350)

package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"iis2mdc-go/errcode"
)

// Parse decodes YAML, fills defaults and validates. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "config", Err: err}
	}
	return c.finish()
}
