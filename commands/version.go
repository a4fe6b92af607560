package commands

import (
	"github.com/uhppoted/uhppoted-lib/command"
)

// VersionCmd is an initialized Version command for the main() command list
var VersionCmd = uhppoted.Version{
	Application: APP,
	Version:     VERSION,
}
