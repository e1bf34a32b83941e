// Command spillctl drives the profile edit flow against a Spill API from the
// terminal, signed in with the init data of a Telegram Mini App session.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
