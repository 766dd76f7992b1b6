package main

import "bookstore/internal/cmd"

func main() {
	cmd.Execute()
}
