package main

import "github.com/mselser95/order-economics/cmd"

func main() {
	cmd.Execute()
}
