// Command roster manages users, profiles, posts and member types held in
// memory.
package main

import "github.com/mesh-intelligence/roster/internal/cli"

func main() {
	cli.Execute()
}
