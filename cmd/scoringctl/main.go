package main

import "github.com/MikeSquared-Agency/InteliHire/internal/cli"

func main() {
	cli.Execute()
}
