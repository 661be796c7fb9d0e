// Package main provides the CLI entrypoint for context-generator.
//
// context-generator reads record structs from a Go package and writes the
// view methods that let templates look their fields up by name:
//
//	//go:generate go run context-generator/cmd/context-generator -type Order,Line
//
// Field directives come from the `view` struct tag or from a YAML config file.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), Command())
}
