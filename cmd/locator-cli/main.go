package main

import cmd "github.com/molyee/scylladb/cmd/locator-cli/modules"

func main() {
	cmd.Execute()
}
