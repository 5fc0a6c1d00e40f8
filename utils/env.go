package utils

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a .env file into the environment so viper's automatic
// env lookup sees it. Missing files are fine.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("ℹ️  No .env file found, continuing...")
	}
}
