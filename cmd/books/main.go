package main

import (
	"bookshelf/cmd/books/commands"
)

func main() {
	commands.Execute()
}
