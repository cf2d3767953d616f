package main

import "github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/cli"

func main() {
	cli.Execute()
}
