// Command hobbit inspects the routes of a hobbit application: it matches URLs against
// the configured route table, builds paths from patterns and validates configurations.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
