package main

import "github.com/weatherflash/weatherflash-backend-go/cmd"

func main() {
	cmd.Execute()
}
