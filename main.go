package main

import "github.com/meysamhadeli/zendocs/cmd"

func main() {
	cmd.Execute()
}
