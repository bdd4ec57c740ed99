package main

import (
	"github.com/mpefaur/plant-vs-water/config"
	"github.com/mpefaur/plant-vs-water/routes"
	"github.com/mpefaur/plant-vs-water/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
