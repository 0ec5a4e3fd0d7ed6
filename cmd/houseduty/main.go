package main

import "houseduty/cmd/houseduty/root"

func main() {
	root.Execute()
}
