package main

import "github.com/horsepowerelectrical/contact-api/cmd"

func main() {
	cmd.Execute()
}
