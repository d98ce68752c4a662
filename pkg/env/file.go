package env

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileFlag names the flag carrying the YAML configuration file.
const ConfigFileFlag = "config"

var fileSections = map[string]interface{}{"env": &defaultConfig}

// SetupFileSection binds a top level key of the configuration file to
// target, usually a package's default config.
func SetupFileSection(name string, target interface{}) {
	fileSections[name] = target
}

// LoadFile decodes a YAML file into the registered sections.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var sections map[string]yaml.Node
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for name, node := range sections {
		target, ok := fileSections[name]
		if !ok {
			return fmt.Errorf("%s: unknown section %q", path, name)
		}
		if err := node.Decode(target); err != nil {
			return fmt.Errorf("%s: section %s: %w", path, name, err)
		}
	}
	return nil
}

// ParseFlags loads the configuration file named on the command line, then
// parses the flags so explicit flags take precedence over the file.
func ParseFlags() {
	if flag.Lookup(ConfigFileFlag) == nil {
		flag.String(ConfigFileFlag, "", "YAML configuration file.")
	}
	if path := configFileArg(os.Args[1:]); path != "" {
		if err := LoadFile(path); err != nil {
			log.Fatalln(err)
		}
	}
	flag.Parse()
}

func configFileArg(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return ""
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if val := strings.TrimPrefix(name, ConfigFileFlag+"="); val != name {
			return val
		}
		if name == ConfigFileFlag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
