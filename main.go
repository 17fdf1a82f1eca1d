package main

import "dj-booking-sync/commands"

func main() {
	commands.Execute()
}
