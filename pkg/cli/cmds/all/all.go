// Package all registers all shell commands.
package all

import (
	_ "github.com/robotalks/edgeline/pkg/cli/cmds/line"
	_ "github.com/robotalks/edgeline/pkg/cli/cmds/repeater"
)
