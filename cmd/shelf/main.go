// Shelf is the command-line front end for the in-memory library catalog.
package main

import "github.com/mesh-intelligence/shelf/internal/cli"

func main() {
	cli.Execute()
}
