package main

import "i18n-helper/internal/cli"

func main() {
	cli.Execute()
}
