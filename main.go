package main

import (
	"github.com/hametuha/hamelp-be/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional; real deployments inject env vars directly.
	godotenv.Load()
}
