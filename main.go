// Command sqlcover correlates database script coverage traces and renders
// coverage reports.
package main

import "github.com/mouse-blink/sqlcover/cmd"

func main() {
	cmd.Execute()
}
