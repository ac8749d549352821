package main

import "github.com/oshokin/squirrel-maker/cmd/squirrel-maker/cmd"

func main() {
	cmd.Execute()
}
