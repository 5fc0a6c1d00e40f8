package main

import "github.com/IvanStoilov/sequelize-auto/cmd"

func main() {
	cmd.Execute()
}
