package main

import "price-resolution-api/internal/cli"

func main() {
	cli.Execute()
}
