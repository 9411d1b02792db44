package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Formats lists the accepted --output values
var Formats = []string{"table", "json", "yaml"}

// IsFormat reports whether format is one of Formats
func IsFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// JSON writes data as JSON to stdout
func JSON(data interface{}) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as JSON to the given writer
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// YAMLTo writes data as YAML to the given writer
func YAMLTo(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Output writes data in the specified format to stdout
func Output(format string, data interface{}) error {
	return OutputTo(os.Stdout, format, data)
}

// OutputTo writes data in the specified format to the given writer
func OutputTo(w io.Writer, format string, data interface{}) error {
	switch format {
	case "json":
		return JSONTo(w, data)
	case "yaml":
		return YAMLTo(w, data)
	case "table", "":
		return TableTo(w, data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
