package main

import (
	"github.com/joho/godotenv"

	"github.com/dylanratti/grain/cmd"
)

func main() {
	// A .env file may carry OPENAI_API_KEY; missing files are fine.
	_ = godotenv.Load()

	cmd.Execute()
}
