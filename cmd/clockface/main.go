// Command clockface renders an analog clock face to image files.
package main

import "github.com/go-drift/clockface/cmd/clockface/cmd"

func main() {
	cmd.Execute()
}
