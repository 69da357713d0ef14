package main

import (
	"fmt"

	"github.com/nabrah/usage-alert-service/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		fmt.Println(err.Error())
		return
	}
}
