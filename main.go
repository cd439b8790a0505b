// Command stairtour runs the ST.AIRS guided product tour in a terminal.
//
// Usage:
//
//	stairtour tour [--full | --delta]
//	stairtour status [--json]
//	stairtour whats-new
//	stairtour use <feature-key>
//	stairtour steps
//	stairtour place --target top,left,width,height [--viewport WxH] [--units px|cells]
//	stairtour reset
//
// Configuration is read from $STAIRTOUR_CONFIG_PATH, the user config dir or
// ./stairtour.yaml, and every key can be overridden with a STAIRTOUR_ variable.
package main

import "stairtour/internal/cli"

func main() {
	cli.Execute()
}
