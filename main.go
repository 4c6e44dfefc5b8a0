package main

import "github.com/vietdv277/skymap/cmd"

func main() {
	cmd.Execute()
}
